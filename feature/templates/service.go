package templates

import (
	"fmt"
	"path/filepath"

	"site-settings/core/jsonfile"
	"site-settings/core/jsontree"
	"site-settings/core/workspace"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Source names the tier a template was resolved from.
type Source string

const (
	SourcePersonal Source = "personal"
	SourceShared   Source = "shared"
	SourceBuiltin  Source = "builtin"
)

const (
	defaultPersonalName = "template.json"
	defaultSharedName   = "default_template.json"
)

// Service resolves and stores templates.
type Service struct {
	fs           afero.Fs
	roots        workspace.RootProvider
	logger       *zap.Logger
	personalName string
	sharedName   string
}

// Option customizes a Service.
type Option func(*Service)

// WithFileNames overrides the personal and shared template file names.
func WithFileNames(personal, shared string) Option {
	return func(s *Service) {
		if personal != "" {
			s.personalName = personal
		}
		if shared != "" {
			s.sharedName = shared
		}
	}
}

// NewService creates a new template service.
func NewService(fs afero.Fs, roots workspace.RootProvider, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		fs:           fs,
		roots:        roots,
		logger:       logger,
		personalName: defaultPersonalName,
		sharedName:   defaultSharedName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PersonalPath returns the location of the personal template.
func (s *Service) PersonalPath() string {
	return filepath.Join(s.roots.ConfigRoot(), s.personalName)
}

// SharedPath returns the location of the shared template.
func (s *Service) SharedPath() string {
	return filepath.Join(s.roots.ConfigRoot(), s.sharedName)
}

// Resolve returns the template content to seed a new server with. It never fails.
func (s *Service) Resolve() []byte {
	content, _ := s.ResolveWithSource()
	return content
}

// ResolveWithSource is Resolve that also reports which tier answered.
func (s *Service) ResolveWithSource() ([]byte, Source) {
	personal := s.PersonalPath()
	if content, ok := s.readValid(personal); ok {
		return content, SourcePersonal
	}
	if content, ok := s.readValid(s.SharedPath()); ok {
		return content, SourceShared
	}

	minimal := Minimal()
	if err := jsonfile.WriteRaw(s.fs, personal, minimal); err != nil {
		s.logger.Warn("Failed to materialize built-in template", zap.String("path", personal), zap.Error(err))
	} else {
		s.logger.Info("Materialized built-in template", zap.String("path", personal))
	}
	return minimal, SourceBuiltin
}

// Save validates content and replaces the personal template with it, pretty-printed.
func (s *Service) Save(content []byte) error {
	formatted, err := jsonfile.Pretty(content)
	if err != nil {
		return fmt.Errorf("template rejected: %w", err)
	}
	path := s.PersonalPath()
	if err := jsonfile.WriteRaw(s.fs, path, formatted); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	s.logger.Info("Personal template saved", zap.String("path", path))
	return nil
}

// Tree returns the resolved template parsed.
func (s *Service) Tree() (*jsontree.Value, error) {
	return jsontree.Parse(s.Resolve())
}

func (s *Service) readValid(path string) ([]byte, bool) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, false
	}
	if !jsontree.Valid(content) {
		s.logger.Warn("Ignoring invalid template", zap.String("path", path))
		return nil, false
	}
	return content, true
}
