package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"djazair-backend/internal/admins"
	"djazair-backend/internal/config"
	"djazair-backend/internal/db"
)

// seed creates the admin named by ADMIN_EMAIL/ADMIN_PASSWORD unless it
// already exists. An existing admin keeps its password.
func main() {
	cfg, err := config.LoadUnchecked()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	service := admins.NewService(admins.NewRepository(gdb))
	created, err := service.Seed(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatal(err)
	}
	if created {
		logger.Info("seed: admin created", slog.String("email", cfg.AdminEmail))
		return
	}
	logger.Info("seed: admin already exists", slog.String("email", cfg.AdminEmail))
}
