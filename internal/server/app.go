// Package server initializes and runs the quiz application: it opens and
// migrates storage, seeds the question bank, and serves the web UI plus the
// optional gRPC health endpoint until it receives a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/cryptox"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/bank"
	"github.com/dmitrijs2005/quizweb/internal/server/config"
	"github.com/dmitrijs2005/quizweb/internal/server/metrics"
	"github.com/dmitrijs2005/quizweb/internal/server/quiz"
	"github.com/dmitrijs2005/quizweb/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/quizweb/internal/server/services"
	"github.com/dmitrijs2005/quizweb/internal/server/session"

	gs "github.com/dmitrijs2005/quizweb/internal/server/grpc"
	httpS "github.com/dmitrijs2005/quizweb/internal/server/http"
	httpH "github.com/dmitrijs2005/quizweb/internal/server/http/handlers"
	httpMW "github.com/dmitrijs2005/quizweb/internal/server/http/middleware"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpS.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, m, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, cfg, logger, db, m)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, cfg *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager) (*App, error) {
	questions := services.NewQuestionService(db, m)
	report, err := questions.Seed(ctx, bank.Builtin())
	if err != nil {
		return nil, fmt.Errorf("seed question bank: %w", err)
	}
	logger.Info(ctx, "question bank seeded",
		"inserted", report.Inserted,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
	)

	accounts := services.NewAccountService(db, m, cryptox.NewHasher(cfg.BcryptCost))

	sessionKey, err := cryptox.DeriveKey(cfg.SecretKey, "session")
	if err != nil {
		return nil, err
	}
	flashKey, err := cryptox.DeriveKey(cfg.SecretKey, "flash")
	if err != nil {
		return nil, err
	}

	tmpl, err := httpS.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	mtr := metrics.New()
	sessions := httpMW.NewSessionStore(session.NewCodec(sessionKey, cfg.SessionTTL), cfg.SecureCookies, logger)

	app := &App{config: cfg, logger: logger, db: db}
	app.http = httpS.NewServer(httpS.RouterConfig{
		AuthHandler:    httpH.NewAuthHandler(accounts, sessions, mtr, logger),
		QuizHandler:    httpH.NewQuizHandler(quiz.NewController(questions, logger, mtr), sessions, logger),
		HealthHandler:  httpH.NewHealthHandler(db),
		Sessions:       sessions,
		FlashKey:       flashKey,
		SecureCookies:  cfg.SecureCookies,
		AllowedOrigins: cfg.AllowedOrigins,
		Templates:      tmpl,
		Metrics:        mtr,
		Logger:         logger,
	})
	if cfg.GRPCHealthAddr != "" {
		app.health = gs.NewHealthServer(cfg.GRPCHealthAddr, logger, db)
	}
	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a shutdown signal arrives, or one of
// the listeners fails. The first listener error is returned. Run closes the
// database before returning.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	start("http", func(ctx context.Context) error { return app.http.Run(ctx, app.config.HTTPAddr) })
	if app.health != nil {
		start("grpc health", app.health.Run)
	}

	wg.Wait()
	app.logger.Info(ctx, "App stopped")

	return errors.Join(append(errs, app.close())...)
}

func (app *App) close() error {
	err := app.db.Close()
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return err
}
