package models

import "time"

// Version is a published app version.
type Version struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Version   float64   `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateVersionRequest struct {
	Name    string   `json:"name" binding:"required"`
	Version *float64 `json:"version" binding:"required"`
}

type UpdateVersionRequest struct {
	Name    *string  `json:"name"`
	Version *float64 `json:"version"`
}
