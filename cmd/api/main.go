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

	"github.com/brightpath-edu/tutoring-backend-go/internal/config"
	appHTTP "github.com/brightpath-edu/tutoring-backend-go/internal/handler/http"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/cron"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/jwt"
	"github.com/brightpath-edu/tutoring-backend-go/internal/repository/postgresql"
	executionService "github.com/brightpath-edu/tutoring-backend-go/internal/service/execution"
	payoutService "github.com/brightpath-edu/tutoring-backend-go/internal/service/payout"
	payrollService "github.com/brightpath-edu/tutoring-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	setupLogger(cfg.App.LogLevel)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessionRepo := postgresql.NewSessionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	classRepo := postgresql.NewClassRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	payoutRepo := postgresql.NewPayoutRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	executionRepo := postgresql.NewExecutionRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	recorder := executionService.NewRecorder(executionRepo)
	rateResolver := payoutService.NewRateResolver(contractRepo, cfg.Compensation.DefaultPayoutRate)
	calculatorSvc := payoutService.NewCalculatorService(
		sessionRepo,
		attendanceRepo,
		classRepo,
		payoutRepo,
		rateResolver,
		recorder,
	)
	aggregatorSvc := payrollService.NewAggregatorService(payoutRepo, payrollRepo, recorder)
	executionSvc := executionService.NewExecutionService(executionRepo)

	scheduler := cron.NewScheduler()
	jobs := cron.NewCompensationJobs(
		calculatorSvc,
		aggregatorSvc,
		cfg.Location(),
		cfg.Compensation.PayoutRunHour,
		cfg.Compensation.AggregationRunDay,
		cfg.Compensation.AggregationRunHour,
	)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()

	payoutHandler := appHTTP.NewPayoutHandler(calculatorSvc)
	payrollHandler := appHTTP.NewPayrollHandler(aggregatorSvc)
	executionHandler := appHTTP.NewExecutionHandler(executionSvc)
	jobHandler := appHTTP.NewJobHandler(calculatorSvc, aggregatorSvc, cfg.Location())

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		payoutHandler,
		payrollHandler,
		executionHandler,
		jobHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
