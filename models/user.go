// models/user.go
package models

import "time"

// User is an application account. Self-registered users start unverified and
// become verified through OTP; admin-managed users are created verified.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	MobileNumber string    `bson:"mobileNumber" json:"mobileNumber"`
	Coins        int64     `bson:"coins" json:"coins"`
	IsVerified   bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserBasicRegistrationData is the signup payload.
type UserBasicRegistrationData struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
}

// CreateUserRequest is the admin payload for a managed user.
type CreateUserRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Coins        int64  `json:"coins" binding:"min=0"`
}

// UserUpdateRequest carries the fields an admin may change; nil means unchanged.
type UserUpdateRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	MobileNumber *string `json:"mobileNumber"`
	Coins        *int64  `json:"coins" binding:"omitempty,min=0"`
}
