package handlers

import (
	adminRepoPkg "adminpanel/database/repository/admin"
	userRepoPkg "adminpanel/database/repository/user"
	"adminpanel/middleware"
	"adminpanel/utils"
)

// HandlerBundle groups the endpoint handlers and what the route guards need.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AdminRepo adminRepoPkg.AdminRepository
	Tokens    middleware.TokenValidator
	Health    *utils.HealthMonitor

	Auth       *AuthHandler
	Users      *UserHandler
	Versions   *VersionHandler
	Wallpapers *WallpaperHandler
}
