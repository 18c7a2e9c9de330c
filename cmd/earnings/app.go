package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bryanwahyu/earnings-analyst/internal/analysis"
	"github.com/bryanwahyu/earnings-analyst/internal/application"
	appai "github.com/bryanwahyu/earnings-analyst/internal/application/ai"
	"github.com/bryanwahyu/earnings-analyst/internal/application/routing"
	"github.com/bryanwahyu/earnings-analyst/internal/config"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/earnings"
	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/ai/openai"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/ai/prompt"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/dataset"
	mysqlp "github.com/bryanwahyu/earnings-analyst/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/earnings-analyst/internal/infra/db/postgres"
	minioStore "github.com/bryanwahyu/earnings-analyst/internal/infra/storage"
	"github.com/bryanwahyu/earnings-analyst/internal/middleware"
	"github.com/bryanwahyu/earnings-analyst/internal/resolver"
)

// app is the wired object graph shared by shell, ask and serve.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	dataset *earnings.Dataset
	library *analysis.Library
	router  *routing.Service
	checks  map[string]middleware.HealthChecker
	closers []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newApp loads the dataset, checks it against every analysis and wires the
// router. Schema problems are fatal here, before any query is accepted.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, offline bool, observer queries.Observer) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		library: analysis.NewLibrary(),
		checks:  make(map[string]middleware.HealthChecker),
	}

	ds, err := a.loadDataset(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load dataset (%s): %w", cfg.Dataset.Source, err)
	}
	if err := a.library.Validate(ds); err != nil {
		a.Close()
		return nil, err
	}
	a.dataset = ds
	a.checks["dataset"] = middleware.DatasetHealthChecker{Rows: ds.Len}
	logger.Info("dataset loaded", "source", cfg.Dataset.Source, "rows", ds.Len(), "columns", len(ds.Columns()))

	classifier, err := a.classifier(offline)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.router = &routing.Service{
		Dataset:    ds,
		Classifier: classifier,
		Resolver:   resolver.New(a.library),
		Library:    a.library,
		Observer:   observer,
		Clock:      application.SystemClock{},
		Logger:     logger,
	}
	return a, nil
}

func (a *app) classifier(offline bool) (queries.Classifier, error) {
	if offline {
		a.logger.Info("classifier disabled, keyword resolver only")
		return appai.Disabled{}, nil
	}
	client, err := openai.NewClient(openai.Config{
		APIKey:  a.cfg.OpenAI.APIKey,
		Model:   a.cfg.OpenAI.Model,
		BaseURL: a.cfg.OpenAI.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (use --offline to run without the model)", err)
	}
	return appai.NewService(client, prompt.GetClassifierPrompt(), a.cfg.OpenAI.Timeout, a.logger), nil
}

func (a *app) loadDataset(ctx context.Context) (*earnings.Dataset, error) {
	cfg := a.cfg
	var loader dataset.Loader
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		loader = dataset.File{Path: cfg.Dataset.Path}

	case config.SourceMinio:
		store, err := newStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		loader = dataset.Object{Store: store, Key: cfg.Dataset.Key}

	case config.SourceMySQL:
		// connect MySQL
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.checks["database"] = &middleware.DatabaseHealthChecker{DB: db}
		loader = mysqlp.NewDatasetRepository(db, cfg.Dataset.Table)

	case config.SourcePostgres:
		db, err := pgp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.checks["database"] = &middleware.DatabaseHealthChecker{DB: db}
		loader = pgp.NewDatasetRepository(db, cfg.Dataset.Table)

	default:
		return nil, fmt.Errorf("unsupported dataset source %q", cfg.Dataset.Source)
	}
	return loader.Load(ctx)
}

func newStore(ctx context.Context, cfg *config.Config) (*minioStore.Store, error) {
	return minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
}
