package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"djazair-backend/internal/admins"
	"djazair-backend/internal/api"
	"djazair-backend/internal/appointments"
	"djazair-backend/internal/auth"
	"djazair-backend/internal/cache"
	"djazair-backend/internal/config"
	"djazair-backend/internal/db"
	"djazair-backend/internal/gallery"
	"djazair-backend/internal/handlers"
	"djazair-backend/internal/middleware"
	"djazair-backend/internal/notifications"
	"djazair-backend/internal/schedule"
	"djazair-backend/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("database connected")
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		logger.Error("database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	adminService := admins.NewService(admins.NewRepository(gdb))
	created, err := adminService.BootstrapIfEmpty(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("admin bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if created {
		logger.Info("admin bootstrapped", slog.String("email", cfg.AdminEmail))
	} else if empty, err := adminService.Empty(ctx); err == nil && empty {
		logger.Warn("no admin user exists; set ADMIN_EMAIL and ADMIN_PASSWORD or run cmd/seed")
	}

	var cacheStore cache.Cache = cache.NewNoop()
	var limiter middleware.Limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow())
	if cfg.RedisEnabled() {
		var redisCache *cache.RedisCache
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("redis connected")
		cacheStore = redisCache
		limiter = middleware.NewRedisRateLimiter(redisCache.Client(), cfg.RateLimitRequests, cfg.RateLimitWindow())
	}

	var content gallery.ContentStore
	if cfg.S3Enabled() {
		s3Content, err := gallery.NewS3Content(ctx, gallery.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err == nil {
			err = s3Content.Ping(ctx)
		}
		if err != nil {
			logger.Error("object storage unavailable", slog.String("bucket", cfg.S3Bucket), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("object storage enabled", slog.String("bucket", cfg.S3Bucket))
		content = s3Content
	}

	var notifier appointments.Notifier
	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox)
	if staff := notifications.NewStaffNotifier(mailer, cfg.ClinicNotifyEmail); staff != nil {
		notifier = staff
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	} else {
		logger.Info("brevo mailer disabled")
	}

	val := validation.New()
	tokens := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL())

	galleryService := gallery.NewService(gallery.NewRepository(gdb), content, cacheStore, cfg.CacheTTL(), logger)
	appointmentService := appointments.NewService(
		appointments.NewRepository(gdb),
		schedule.NewPolicy(cfg.EnforceDatePolicy, cfg.Timezone),
		notifier,
		logger,
	)

	router := api.NewRouter(api.Deps{
		Log:         logger,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		Limiter:     limiter,
		Tokens:      tokens,
		Session: &handlers.Server{
			Admins:       adminService,
			Tokens:       tokens,
			Val:          val,
			Log:          logger,
			CookieSecure: cfg.CookieSecure,
		},
		Gallery:      gallery.NewHandler(galleryService, logger),
		Appointments: appointments.NewHandler(appointmentService, val, logger),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	appointmentService.Wait()
	logger.Info("server stopped")
}
