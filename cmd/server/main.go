package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"zinclab/internal/config"
	"zinclab/internal/db"
	"zinclab/internal/db/mock"
	applog "zinclab/internal/log"
	"zinclab/internal/server"
)

// serverLifecycle is the slice of server.Server that run drives, kept narrow
// so tests can substitute a stub.
type serverLifecycle interface {
	Start() error
	Stop() error
}

// Seams for tests.
var (
	loadConfigFunc       = config.Load
	setLogLevelFunc      = applog.SetLevel
	configureDatabase    = db.Configure
	newMockDatabaseFunc  = mock.New
	newServerFunc        = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.LogLevel); err != nil {
		log.Printf("invalid log level: %v", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.URL != "" {
		database, err = configureDatabase(cfg.Database)
		if err != nil {
			log.Printf("failed to configure database: %v", err)
			return 1
		}
	} else {
		// No DATABASE_URL means a local demo run against seeded in-memory data.
		database, err = newMockDatabaseFunc(ctx)
		if err != nil {
			log.Printf("failed to initialize demo database: %v", err)
			return 1
		}
		applog.Info(ctx, "no database configured, using seeded in-memory store")
	}

	srv, err := newServerFunc(server.Config{
		Addr:     cfg.Server.Addr,
		Session:  cfg.Session,
		Uploads:  cfg.Uploads,
		Database: database,
	})
	if err != nil {
		log.Printf("failed to build server: %v", err)
		return 1
	}

	startErrCh := make(chan error, 1)
	go func() {
		log.Printf("starting http server on %s", cfg.Server.Addr)
		startErrCh <- srv.Start()
	}()

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-startErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server encountered an error: %v", err)
			return 1
		}
	case <-sigCh:
		log.Println("shutting down http server")
		if err := srv.Stop(); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
			return 1
		}
	}

	return 0
}
