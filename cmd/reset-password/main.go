package main

import (
	"flag"
	"os"

	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/pkg/config"
	"go-pos-console/pkg/database"
	"go-pos-console/pkg/logger"

	"github.com/google/uuid"
)

// reset-password sets a user's password directly in the database and ends their session.
func main() {
	username := flag.String("user", "admin", "username whose password is reset")
	password := flag.String("password", "admin123", "new password")
	unlock := flag.Bool("unlock", true, "also unlock and reactivate the account")
	flag.Parse()

	log := logger.New("reset-password", os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Error("failed to connect to database")
		os.Exit(1)
	}

	userRepo := repository.NewUserRepo(db)
	user, err := userRepo.FindByUsername(*username)
	if err != nil {
		log.WithError(err).WithField("username", *username).Error("user not found in database")
		os.Exit(1)
	}

	var hashed model.User
	if err := hashed.SetPassword(*password); err != nil {
		log.WithError(err).Error("failed to hash password")
		os.Exit(1)
	}
	if err := userRepo.UpdatePassword(user.ID, hashed.Password); err != nil {
		log.WithError(err).Error("failed to update password in DB")
		os.Exit(1)
	}
	version := uuid.New().String()
	if err := userRepo.UpdateTokenVersion(user.ID, version); err != nil {
		log.WithError(err).Error("failed to end open sessions")
		os.Exit(1)
	}

	if *unlock {
		user.IsActive = true
		user.IsLocked = false
		user.Password = hashed.Password
		user.TokenVersion = version
		if err := userRepo.Update(user); err != nil {
			log.WithError(err).Error("failed to unlock user")
			os.Exit(1)
		}
	}

	log.WithField("username", user.Username).Info("password reset")
}
