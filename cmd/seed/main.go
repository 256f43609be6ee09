package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"devconnector/internal/auth"
	"devconnector/internal/config"
	"devconnector/internal/db"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/logger"
	"devconnector/internal/repository"
	"devconnector/internal/service"
)

//go:embed seed.json
var defaultSeed []byte

// SeedUser is a demo account with the posts it authors.
type SeedUser struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Status   string   `json:"status"`
	Skills   string   `json:"skills"`
	Posts    []string `json:"posts"`
}

func main() {
	seedFile := flag.String("file", "", "JSON seed file; the built-in demo data is used when empty")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg := config.Load()
	lg := logger.New(os.Stdout, cfg.Development())

	users, err := loadSeed(*seedFile)
	if err != nil {
		lg.Error("load seed data", slog.Any("error", err))
		os.Exit(1)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, lg)
	if err != nil {
		lg.Error("database init", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		lg.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := repository.NewUserRepository(gormDB)
	s := seeder{
		codec:    codec,
		auth:     service.NewAuthService(userRepo, codec, nil, lg),
		posts:    service.NewPostService(repository.NewPostRepository(gormDB), userRepo, nil, nil),
		profiles: service.NewProfileService(repository.NewProfileRepository(gormDB), nil, lg),
		logger:   lg,
	}

	created, skipped, err := s.run(context.Background(), users)
	if err != nil {
		lg.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	lg.Info("seed completed", slog.Int("created", created), slog.Int("skipped", skipped))
}

// loadSeed reads seed users from path, or the built-in data when path is empty.
func loadSeed(path string) ([]SeedUser, error) {
	raw := defaultSeed
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var users []SeedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return users, nil
}

type seeder struct {
	codec    *auth.TokenCodec
	auth     service.AuthService
	posts    service.PostService
	profiles service.ProfileService
	logger   *slog.Logger
}

// run registers each user with a profile and posts. Existing emails are skipped.
func (s seeder) run(ctx context.Context, users []SeedUser) (created, skipped int, err error) {
	for _, u := range users {
		token, err := s.auth.Register(ctx, u.Name, u.Email, u.Password)
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			s.logger.Info("user exists, skipping", slog.String("email", u.Email))
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("register %s: %w", u.Email, err)
		}

		userID, err := s.codec.Verify(token)
		if err != nil {
			return created, skipped, fmt.Errorf("verify token for %s: %w", u.Email, err)
		}

		if u.Status != "" && u.Skills != "" {
			if _, err := s.profiles.Upsert(ctx, userID, service.ProfileInput{Status: u.Status, Skills: u.Skills}); err != nil {
				return created, skipped, fmt.Errorf("profile for %s: %w", u.Email, err)
			}
		}

		for _, text := range u.Posts {
			if _, err := s.posts.Create(ctx, userID, text); err != nil {
				return created, skipped, fmt.Errorf("post for %s: %w", u.Email, err)
			}
		}
		created++
	}
	return created, skipped, nil
}
