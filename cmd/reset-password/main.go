package main

import (
	"flag"
	"os"

	"barber-pos-api/internal/config"
	"barber-pos-api/internal/logger"
	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/pkg/database"
)

func main() {
	username := flag.String("username", "admin", "user whose password is reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	// 1. Load Env
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if len(*password) < 6 {
		log.Error().Msg("-password must be at least 6 characters")
		flag.Usage()
		os.Exit(2)
	}

	// 2. Setup Database
	db, err := database.Connect(database.Options{Driver: cfg.DBDriver, DSN: cfg.DSN()}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	users := repository.NewUserRepo(db)

	// 3. Find user
	user, err := users.FindByUsername(*username)
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("user not found in database")
	}

	// 4. Hash new password and update
	var hashed model.User
	if err := hashed.SetPassword(*password); err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}
	patch := model.Patch{"password": hashed.Password, "updated_by": "reset-password"}
	if err := users.Update(user.ID, patch); err != nil {
		log.Fatal().Err(err).Msg("failed to update password in DB")
	}

	log.Info().Str("username", user.Username).Msg("password has been reset")
}
