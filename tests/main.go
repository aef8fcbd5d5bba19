package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"adminpanel/config"
	"adminpanel/database"
	userRepoPkg "adminpanel/database/repository/user"
	versionRepoPkg "adminpanel/database/repository/version"
	"adminpanel/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a development database with verified users and a version history.
// Existing users and versions are cleared first.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	client, db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"users", "versions"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	users := userRepoPkg.NewMongoUserRepo(ctx, db)
	versions := versionRepoPkg.NewMongoVersionRepo(ctx, db)

	pass := "$Password1234"
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	const userCount = 25
	for i := 1; i <= userCount; i++ {
		usr := &models.User{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("Seed User %d", i),
			Email:        fmt.Sprintf("seed_user_%d@example.com", i),
			PasswordHash: string(hashed),
			MobileNumber: fmt.Sprintf("900000%04d", i),
			Coins:        int64(rand.Intn(500)),
			IsVerified:   true,
		}
		if err := users.Create(ctx, usr); err != nil {
			log.Fatalf("Failed to insert user %d: %v", i, err)
		}
	}
	fmt.Printf("Inserted %d users (password %q)\n", userCount, pass)

	releases := []struct {
		Name   string
		Number float64
	}{
		{"Initial release", 1.0},
		{"Wallpaper packs", 1.1},
		{"Coins", 1.2},
		{"Redesign", 2.0},
	}
	for _, r := range releases {
		v := &models.Version{ID: uuid.New().String(), Name: r.Name, Version: r.Number}
		if err := versions.Create(ctx, v); err != nil {
			log.Fatalf("Failed to insert version %v: %v", r.Number, err)
		}
	}
	fmt.Printf("Inserted %d versions\n", len(releases))
}
