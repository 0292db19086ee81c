package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sagarc03/filewriter"
	"github.com/sagarc03/filewriter/config"
	"github.com/sagarc03/filewriter/database"
	"github.com/sagarc03/filewriter/filesystem"
	"github.com/sagarc03/filewriter/s3store"
)

// app holds the wired components shared by the subcommands.
type app struct {
	store   filewriter.ObjectStore
	db      database.Database
	service *filewriter.FileService
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp opens the object store and, when metadata is enabled, the tag
// database (creating and validating its table).
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, closeStore)

	var tags filewriter.TagRepo
	if cfg.Metadata.Enabled {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, func() { _ = db.Close() })
		tags = db.GetRepo()
		slog.Info("connected to database", "type", cfg.Database.Type, "table", cfg.Database.Tables.Tags)
	}

	policy, err := filewriter.ParseTagUpdatePolicy(cfg.Metadata.TagUpdate)
	if err != nil {
		a.Close()
		return nil, err
	}

	service, err := filewriter.NewFileService(store, tags, filewriter.ServiceConfig{TagUpdate: policy})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create service: %w", err)
	}
	a.service = service

	return a, nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (filewriter.ObjectStore, func(), error) {
	switch cfg.Type {
	case "s3":
		store, err := s3store.New(ctx, s3store.Config{
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			UsePathStyle:    cfg.UsePathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 store: %w", err)
		}
		return store, func() {}, nil
	case "filesystem":
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create storage directory: %w", err)
		}

		root, err := os.OpenRoot(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		return filesystem.NewFileStorage(root, cfg.Bucket), func() { _ = root.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ensureBucket creates the bucket when missing. Failure is only fatal when
// required is set.
func ensureBucket(ctx context.Context, store filewriter.ObjectStore, bucket string, required bool) error {
	created, err := store.EnsureBucket(ctx)
	if err != nil {
		if required {
			return fmt.Errorf("ensure bucket %s: %w", bucket, err)
		}
		slog.Error("error ensuring bucket exists", "bucket", bucket, "err", err)
		return nil
	}

	if created {
		slog.Info("bucket created", "bucket", bucket)
	} else {
		slog.Info("bucket already exists", "bucket", bucket)
	}
	return nil
}

func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, err := config.FromContext(ctx)
	if err != nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}
