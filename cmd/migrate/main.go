package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/config"
	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/BradenHooton/heavyprofile/internal/repositories"
	pkgauth "github.com/BradenHooton/heavyprofile/pkg/auth"
)

// Applies the embedded migrations and optionally seeds the admin row:
//
//	migrate -admin-username admin -admin-password 'secret' [-bcrypt]
func main() {
	adminUsername := flag.String("admin-username", "", "seed the admin row with this username (only when the table is empty)")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin row")
	useBcrypt := flag.Bool("bcrypt", false, "store the seeded password as a bcrypt hash")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.Migrate(cfg.Database.DSN(), logger); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	if *adminPassword == "" {
		return
	}

	if err := pkgauth.ValidatePassword(*adminPassword); err != nil {
		logger.Error("admin password rejected", slog.Any("error", err))
		os.Exit(1)
	}
	password := *adminPassword
	if *useBcrypt {
		if password, err = pkgauth.HashPassword(password); err != nil {
			logger.Error("failed to hash admin password", slog.Any("error", err))
			os.Exit(1)
		}
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := repositories.NewAdminRepository(db).Create(ctx, *adminUsername, password)
	if err != nil {
		logger.Error("failed to seed admin", slog.Any("error", err))
		return
	}
	if created {
		logger.Info("admin row created", slog.Bool("bcrypt", *useBcrypt))
	} else {
		logger.Info("admin row already exists, seed skipped")
	}
}
