package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/ws"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	locationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/location"
	scheduleService "github.com/cmlabs-hris/attendance-backend-go/internal/service/schedule"
	"github.com/jackc/pgx/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	calendar, err := workday.Load(cfg.Attendance.Timezone)
	if err != nil {
		slog.Warn("Time zone unavailable, using fixed UTC+7", "timezone", cfg.Attendance.Timezone, "error", err)
		calendar = workday.Default()
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	officeLocationRepo := postgresql.NewOfficeLocationRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	// Schema and admin seed are applied together so a failed start leaves nothing behind
	err = postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if err := postgresql.EnsureSchema(txCtx, db); err != nil {
			return err
		}
		_, err := fixtures.EnsureAdmin(txCtx, userRepo, fixtures.AdminSeed{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			FullName: cfg.Admin.FullName,
		})
		return err
	})
	if err != nil {
		slog.Error("Error bootstrapping database", "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		officeLocationRepo,
		scheduleRepo,
		userRepo,
		calendar,
		hub,
	)
	officeLocationSvc := locationService.NewOfficeLocationService(officeLocationRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, calendar, hub).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	settingsHandler := appHTTP.NewSettingsHandler(officeLocationSvc, scheduleSvc)
	liveHandler := appHTTP.NewLiveHandler(hub, JWTService, cfg.App.AllowedOrigins)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		settingsHandler,
		liveHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", calendar.Location().String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}
}
