package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ndille/ghia/internal/analyzer"
	"github.com/ndille/ghia/internal/config"
	"github.com/ndille/ghia/internal/logger"
	"github.com/ndille/ghia/internal/store"
)

type appKey struct{}

type App struct {
	Config  config.Config
	Client  analyzer.Service
	Store   *store.Store
	Log     *zap.Logger
	Timeout time.Duration
}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func getApp(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

func initApp(configPath string, logLevel string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	log, err := logger.New(logLevel)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second

	var client analyzer.Service = analyzer.NewClient(cfg.Backend.BaseURL, timeout, analyzer.DefaultSchemaPath(), log)
	if os.Getenv("GHIA_MOCK") == "1" {
		fixture := os.Getenv("GHIA_FIXTURE")
		if fixture == "" {
			fixture = filepath.Join("testdata", "analysis", "analysis.json")
		}
		client = analyzer.NewFakeClient(fixture)
	}

	storePath := os.Getenv("GHIA_DB_PATH")
	if storePath == "" {
		storePath = filepath.Join(os.Getenv("HOME"), ".ghia", "ghia.db")
	}
	st, err := store.Open(storePath)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Client:  client,
		Store:   st,
		Log:     log,
		Timeout: timeout,
	}, nil
}
