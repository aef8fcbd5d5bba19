package models

import "time"

// Admin is an administrator account stored in its own collection.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	MobileNumber string    `bson:"mobileNumber" json:"mobileNumber"`
	IsAdmin      bool      `bson:"isAdmin" json:"isAdmin"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateAdminRequest is the payload for /api/users/admin and /api/users/init-admin.
type CreateAdminRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
