package cmd

import (
	"fmt"

	"site-settings/core/config"
	"site-settings/core/database"
	"site-settings/core/logger"
	"site-settings/core/metrics"
	"site-settings/core/storage"
	"site-settings/core/workspace"
	"site-settings/feature/archive"
	"site-settings/feature/integrity"
	"site-settings/feature/servers"
	"site-settings/feature/templates"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the services shared by the commands.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Registry
	resolver  *workspace.Resolver
	db        *gorm.DB
	store     storage.Client
	templates *templates.Service
	servers   *servers.Service
	archive   *archive.Service
	integrity *integrity.Service
}

// newApplication loads the configuration and wires every service.
// The database and the archive bucket are optional and only logged when unavailable.
func newApplication() (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlag != "" {
		cfg.Workspace.RootDir = rootFlag
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &application{
		cfg:     cfg,
		logger:  logg,
		metrics: metrics.NewRegistry(),
	}

	fs := afero.NewOsFs()
	a.resolver = workspace.NewResolver(fs, cfg.Workspace, logg)

	var opts []servers.Option
	opts = append(opts, servers.WithMetrics(a.metrics))

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			a.db = conn
			audit := database.NewAuditStore(conn)
			if err := audit.Migrate(); err != nil {
				logg.Warn("Audit table migration failed", zap.Error(err))
			}
			opts = append(opts, servers.WithAudit(audit))
			logg.Info("Connected to audit database")
		}
	}

	if cfg.Storage.Enabled {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Archive storage unavailable", zap.Error(err))
		} else {
			a.store = client
		}
	}

	a.templates = templates.NewService(fs, a.resolver, logg,
		templates.WithFileNames(a.resolver.PersonalTemplateName(), a.resolver.SharedTemplateName()))
	a.servers = servers.NewService(fs, a.resolver, a.templates, logg, opts...)
	a.archive = archive.NewService(fs, a.resolver, a.store, cfg.Storage, logg)

	// Integrity checks never write: roots are looked up, not created.
	ro := afero.NewReadOnlyFs(fs)
	lookup := workspace.NewResolver(ro, cfg.Workspace, logg).Lookup()
	checkTemplates := templates.NewService(ro, lookup, logg,
		templates.WithFileNames(a.resolver.PersonalTemplateName(), a.resolver.SharedTemplateName()))
	a.integrity = integrity.NewService(ro, servers.NewService(ro, lookup, checkTemplates, logg), checkTemplates,
		a.db, a.store, cfg.Storage.Bucket, logg)

	return a, nil
}

func (a *application) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
