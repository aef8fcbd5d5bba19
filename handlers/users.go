package handlers

import (
	"errors"
	"net/http"

	"adminpanel/models"
	"adminpanel/services/auth"
	"adminpanel/services/user"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves /api/users: managed users and admin accounts.
type UserHandler struct {
	Users user.UserService
	Auth  auth.AuthService
}

func NewUserHandler(users user.UserService, authSvc auth.AuthService) *UserHandler {
	return &UserHandler{Users: users, Auth: authSvc}
}

// CreateUserHandler handles POST /api/users.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	usr, err := h.Users.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.userError(c, "Create user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "", usr)
}

// ListUsersHandler handles GET /api/users?page&limit.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, pagination, err := h.Users.ListUsers(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		serverError(c, "List users", err)
		return
	}
	utils.JSONPage(c, users, pagination)
}

// GetUserByIDHandler handles GET /api/users/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	usr, err := h.Users.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.userError(c, "Get user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", usr)
}

// UpdateUserHandler handles PUT /api/users/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	usr, err := h.Users.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.userError(c, "Update user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", usr)
}

// DeleteUserHandler handles DELETE /api/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.userError(c, "Delete user", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User deleted successfully", gin.H{})
}

// CreateAdminHandler handles POST /api/users/admin.
func (h *UserHandler) CreateAdminHandler(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	resp, err := h.Auth.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateAccount) {
			utils.JSONError(c, http.StatusBadRequest, "Admin with this email already exists", "")
			return
		}
		serverError(c, "Create admin", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Admin created successfully", resp)
}

// InitAdminHandler handles POST /api/users/init-admin. It only succeeds
// while no admin exists.
func (h *UserHandler) InitAdminHandler(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	resp, err := h.Auth.CreateInitialAdmin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAdminsExist):
			utils.JSONError(c, http.StatusBadRequest, "Admin users already exist. Use the regular admin creation endpoint.", "")
		case errors.Is(err, auth.ErrDuplicateAccount):
			utils.JSONError(c, http.StatusBadRequest, "User with this email already exists", "")
		default:
			serverError(c, "Create initial admin", err)
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Initial admin created successfully", resp)
}

func (h *UserHandler) userError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, user.ErrUserExists):
		utils.JSONError(c, http.StatusBadRequest, "User with this email already exists", "")
	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusBadRequest, "Email is already taken", "")
	case errors.Is(err, user.ErrNothingToEdit):
		utils.JSONError(c, http.StatusBadRequest, "No updatable fields provided", "")
	case errors.Is(err, user.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	default:
		serverError(c, op, err)
	}
}
