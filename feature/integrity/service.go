package integrity

import (
	"context"
	"time"

	"site-settings/core/storage"
	"site-settings/feature/integrity/checks"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServerLister enumerates the managed servers.
type ServerLister interface {
	Root() string
	List() ([]string, error)
}

// TemplatePaths exposes the on-disk template tiers.
type TemplatePaths interface {
	PersonalPath() string
	SharedPath() string
}

// Report is the combined result of all checks.
type Report struct {
	Root      string         `json:"root"`
	Servers   int            `json:"servers"`
	Healthy   bool           `json:"healthy"`
	Issues    []checks.Issue `json:"issues"`
	Errors    []string       `json:"errors,omitempty"`
	CheckedAt time.Time      `json:"checked_at"`
}

// Service handles integrity checks.
type Service struct {
	fs        afero.Fs
	servers   ServerLister
	templates TemplatePaths
	db        *gorm.DB
	client    storage.Client
	bucket    string
	logger    *zap.Logger
}

// NewService creates a new integrity service. db and client are optional.
func NewService(fs afero.Fs, servers ServerLister, templates TemplatePaths, db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		fs:        fs,
		servers:   servers,
		templates: templates,
		db:        db,
		client:    client,
		bucket:    bucket,
		logger:    logger,
	}
}

// CheckSnapshots inspects every server folder.
func (s *Service) CheckSnapshots() ([]checks.Issue, int, error) {
	names, err := s.servers.List()
	if err != nil {
		return nil, 0, err
	}
	return checks.CheckSnapshots(s.fs, s.servers.Root(), names), len(names), nil
}

// CheckTemplates validates the personal and shared templates.
func (s *Service) CheckTemplates() []checks.Issue {
	return checks.CheckTemplates(s.fs, s.templates.PersonalPath(), s.templates.SharedPath())
}

// CheckDatabase validates the audit table. It returns nothing when no database is connected.
func (s *Service) CheckDatabase() ([]checks.Issue, error) {
	if s.db == nil {
		return nil, nil
	}
	return checks.CheckAudit(s.db)
}

// CheckArchive verifies the archive bucket. It returns nothing when archiving is disabled.
func (s *Service) CheckArchive(ctx context.Context) ([]checks.Issue, error) {
	if s.client == nil {
		return nil, nil
	}
	return checks.CheckArchive(ctx, s.client, s.bucket)
}

// Run executes all checks. A failing check is reported in Errors and the others still run.
func (s *Service) Run(ctx context.Context) *Report {
	report := &Report{
		Root:      s.servers.Root(),
		Issues:    []checks.Issue{},
		CheckedAt: time.Now(),
	}

	issues, count, err := s.CheckSnapshots()
	if err != nil {
		report.Errors = append(report.Errors, "snapshots: "+err.Error())
	}
	report.Servers = count
	report.Issues = append(report.Issues, issues...)

	report.Issues = append(report.Issues, s.CheckTemplates()...)

	if issues, err := s.CheckDatabase(); err != nil {
		report.Errors = append(report.Errors, "database: "+err.Error())
	} else {
		report.Issues = append(report.Issues, issues...)
	}

	if issues, err := s.CheckArchive(ctx); err != nil {
		report.Errors = append(report.Errors, "archive: "+err.Error())
	} else {
		report.Issues = append(report.Issues, issues...)
	}

	report.Healthy = len(report.Issues) == 0 && len(report.Errors) == 0
	s.logger.Info("Integrity check finished",
		zap.Int("servers", report.Servers),
		zap.Int("issues", len(report.Issues)),
		zap.Int("errors", len(report.Errors)))
	return report
}
