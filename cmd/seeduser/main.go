// cmd/seeduser/main.go: creates or resets the owner account.
// Usage: SEED_USERNAME=owner SEED_PASSWORD=secret go run ./cmd/seeduser
package main

import (
	"context"
	"os"

	"nedpos/internal/config"
	"nedpos/internal/infra"
	"nedpos/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	username := envOr("SEED_USERNAME", "owner")
	password := envOr("SEED_PASSWORD", "changeme123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}

	user := model.User{
		Username:     username,
		Name:         envOr("SEED_NAME", "Store Owner"),
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
		Active:       true,
	}
	err = db.WithContext(context.Background()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "name", "role", "active", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		log.Fatal().Err(err).Msg("upsert user")
	}
	log.Info().Str("username", username).Msg("owner account created or reset")
}
