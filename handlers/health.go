package handlers

import (
	"net/http"

	"adminpanel/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check. It always answers 200;
// the body says whether Mongo and Redis were reachable.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		state := "ok"
		if !status.Mongo || !status.Redis {
			state = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": state, "services": status})
	}
}
