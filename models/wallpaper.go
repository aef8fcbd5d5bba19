package models

import "time"

// Wallpaper groups one or more uploaded images under a name.
type Wallpaper struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	ImagePaths []string  `bson:"imagePaths" json:"imagePaths"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
