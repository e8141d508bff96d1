package servers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"site-settings/core/changelog"
	"site-settings/core/database"
	"site-settings/core/jsonfile"
	"site-settings/core/jsontree"
	"site-settings/core/metrics"
	"site-settings/core/snapshot"
	"site-settings/core/workspace"
	"site-settings/feature/templates"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const deletedLayout = "20060102_150405"

// ErrOutsideRoot is returned when a raw JSON path is outside the managed directories.
var ErrOutsideRoot = errors.New("path outside configuration roots")

// TemplateSource provides seed content for new servers.
type TemplateSource interface {
	ResolveWithSource() ([]byte, templates.Source)
}

// Latest is the current snapshot of a server with its content.
type Latest struct {
	snapshot.Info
	Content []byte `json:"-"`
}

// Service manages server configuration histories.
type Service struct {
	fs        afero.Fs
	roots     workspace.RootProvider
	templates TemplateSource
	logger    *zap.Logger
	audit     database.Recorder
	metrics   *metrics.Registry
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithAudit records lifecycle operations with rec.
func WithAudit(rec database.Recorder) Option {
	return func(s *Service) { s.audit = rec }
}

// WithMetrics counts operations in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Service) { s.metrics = reg }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new server service.
func NewService(fs afero.Fs, roots workspace.RootProvider, tmpl TemplateSource, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		fs:        fs,
		roots:     roots,
		templates: tmpl,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the directory holding the server folders.
func (s *Service) Root() string {
	return s.roots.ServersRoot()
}

func (s *Service) folder(name string) string {
	return filepath.Join(s.Root(), name)
}

// List returns the server names under the root, sorted ascending.
// Stray .json entries and soft-deleted folders are not servers.
func (s *Service) List() ([]string, error) {
	root := s.Root()
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", snapshot.ErrUnreadable, root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".json") || strings.Contains(n, deletedMarker) {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Snapshots returns the snapshot file names of a server, newest first.
func (s *Service) Snapshots(name string) ([]string, error) {
	folder, err := s.existing(name)
	if err != nil {
		return nil, err
	}
	return snapshot.List(s.fs, folder)
}

// Latest returns the newest snapshot of a server with its validated content.
func (s *Service) Latest(name string) (*Latest, error) {
	folder, err := s.existing(name)
	if err != nil {
		return nil, err
	}
	info, err := snapshot.Latest(s.fs, folder)
	if err != nil {
		return nil, err
	}
	content, err := jsonfile.Read(s.fs, info.Path)
	if err != nil {
		return nil, err
	}
	return &Latest{Info: *info, Content: content}, nil
}

// Create makes a new server folder seeded with a first snapshot and returns its path.
// An existing folder that already holds snapshots is refused.
func (s *Service) Create(ctx context.Context, name string, useTemplate bool) (path string, err error) {
	defer func() { s.metrics.Observe(database.OpCreate, err) }()

	if err := ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	folder := s.folder(name)
	if existing, err := snapshot.List(s.fs, folder); err == nil && len(existing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrTargetExists, name)
	}

	content := templates.Minimal()
	if useTemplate && s.templates != nil {
		var source templates.Source
		content, source = s.templates.ResolveWithSource()
		s.metrics.TemplateResolved(string(source))
	}

	path = filepath.Join(folder, snapshot.FileName(name, s.now()))
	if err := jsonfile.Write(s.fs, path, content); err != nil {
		return "", fmt.Errorf("failed to create server %s: %w", name, err)
	}

	s.logger.Info("Server created", zap.String("server", name), zap.String("file", path), zap.Bool("template", useTemplate))
	s.record(ctx, database.AuditEntry{Operation: database.OpCreate, Server: name, File: path})
	return path, nil
}

// Save writes content as a new snapshot and returns its path.
// It never overwrites: a second save on the same day gets a time suffix.
func (s *Service) Save(ctx context.Context, name string, content []byte) (path string, err error) {
	defer func() { s.metrics.Observe(database.OpSave, err) }()

	tree, err := jsontree.Parse(content)
	if err != nil {
		return "", fmt.Errorf("config rejected: %w", err)
	}
	folder, err := s.existing(name)
	if err != nil {
		return "", err
	}

	var previous *jsontree.Value
	if info, err := snapshot.Latest(s.fs, folder); err == nil {
		if prev, err := jsonfile.ReadTree(s.fs, info.Path); err == nil {
			previous = prev
		}
	}

	now := s.now()
	path, err = snapshot.NextPath(s.fs, folder, name, now)
	if err != nil {
		return "", err
	}
	if err := jsonfile.WriteTree(s.fs, path, tree); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}

	if previous != nil {
		s.appendChangelog(folder, name, filepath.Base(path), now, changelog.Diff(previous, tree))
	}

	s.logger.Info("Config saved", zap.String("server", name), zap.String("file", path))
	s.record(ctx, database.AuditEntry{Operation: database.OpSave, Server: name, File: path})
	return path, nil
}

// Copy clones the whole history of source into a new server named target and
// returns the number of files written. Inside JSON files every string value
// containing source has it replaced by target; file names are renamed the same
// way and other files are copied as-is. Two files renamed to the same name fail
// the copy with ErrTargetExists. On failure the target folder is removed.
func (s *Service) Copy(ctx context.Context, source, target string) (count int, err error) {
	defer func() { s.metrics.Observe(database.OpCopy, err) }()

	if err := ValidateName(source); err != nil {
		return 0, fmt.Errorf("%w: %q", err, source)
	}
	if err := ValidateName(target); err != nil {
		return 0, fmt.Errorf("%w: %q", err, target)
	}

	src, dst := s.folder(source), s.folder(target)
	if ok, _ := afero.DirExists(s.fs, src); !ok {
		return 0, fmt.Errorf("%w: %s", ErrSourceMissing, source)
	}
	exists, err := afero.Exists(s.fs, dst)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", snapshot.ErrUnreadable, err)
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrTargetExists, target)
	}

	entries, err := afero.ReadDir(s.fs, src)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", snapshot.ErrUnreadable, src, err)
	}
	if err := s.fs.MkdirAll(dst, 0755); err != nil {
		return 0, fmt.Errorf("%w: %v", jsonfile.ErrUnwritable, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			s.logger.Debug("Skipping nested directory", zap.String("server", source), zap.String("dir", e.Name()))
			continue
		}
		if err := s.copyFile(src, dst, e.Name(), source, target); err != nil {
			if rmErr := s.fs.RemoveAll(dst); rmErr != nil {
				s.logger.Error("Failed to remove partial copy", zap.String("path", dst), zap.Error(rmErr))
			}
			return 0, fmt.Errorf("failed to copy %s to %s: %w", source, target, err)
		}
		count++
	}

	s.logger.Info("Server copied", zap.String("source", source), zap.String("target", target), zap.Int("files", count))
	s.record(ctx, database.AuditEntry{Operation: database.OpCopy, Server: source, Target: target, File: dst})
	return count, nil
}

func (s *Service) copyFile(srcDir, dstDir, name, source, target string) error {
	data, err := afero.ReadFile(s.fs, filepath.Join(srcDir, name))
	if err != nil {
		return fmt.Errorf("%w: %v", jsonfile.ErrUnreadable, err)
	}

	if snapshot.IsSnapshot(name) {
		if tree, perr := jsontree.Parse(data); perr == nil {
			out, err := jsontree.MarshalIndent(jsontree.ReplaceStrings(tree, source, target))
			if err != nil {
				return err
			}
			data = out
		} else {
			s.logger.Warn("Copying unparsable snapshot verbatim", zap.String("file", name), zap.Error(perr))
		}
	}

	newName := strings.ReplaceAll(name, source, target)
	dest := filepath.Join(dstDir, newName)
	exists, err := afero.Exists(s.fs, dest)
	if err != nil {
		return fmt.Errorf("%w: %v", snapshot.ErrUnreadable, err)
	}
	if exists {
		return fmt.Errorf("%w: %s and another file both map to %s", ErrTargetExists, name, newName)
	}
	if err := afero.WriteFile(s.fs, dest, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", jsonfile.ErrUnwritable, err)
	}
	return nil
}

// Delete soft-deletes a server by renaming its folder to `<name>.deleted.<timestamp>`
// and returns the new folder path.
func (s *Service) Delete(ctx context.Context, name string) (backup string, err error) {
	defer func() { s.metrics.Observe(database.OpDelete, err) }()

	folder, err := s.existing(name)
	if err != nil {
		return "", err
	}
	backup = folder + deletedMarker + s.now().Format(deletedLayout)
	if err := s.fs.Rename(folder, backup); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenameFailed, name, err)
	}

	s.logger.Info("Server deleted", zap.String("server", name), zap.String("backup", backup))
	s.record(ctx, database.AuditEntry{Operation: database.OpDelete, Server: name, File: backup})
	return backup, nil
}

// Changelog returns the change log of a server, empty when none was written yet.
func (s *Service) Changelog(name string) (string, error) {
	folder, err := s.existing(name)
	if err != nil {
		return "", err
	}
	return changelog.Read(s.fs, changelog.Path(folder, name))
}

// MissingTemplateItems lists template keys absent from the latest snapshot.
func (s *Service) MissingTemplateItems(name string) ([]changelog.MissingItem, error) {
	latest, err := s.Latest(name)
	if err != nil {
		return nil, err
	}
	current, err := jsontree.Parse(latest.Content)
	if err != nil {
		return nil, err
	}

	raw := templates.Minimal()
	if s.templates != nil {
		raw, _ = s.templates.ResolveWithSource()
	}
	tmpl, err := jsontree.Parse(raw)
	if err != nil {
		return nil, err
	}
	return changelog.Missing(tmpl, current), nil
}

// ReadJSON returns the validated content of a JSON file inside the managed roots.
func (s *Service) ReadJSON(path string) ([]byte, error) {
	if err := s.checkPath(path); err != nil {
		return nil, err
	}
	return jsonfile.Read(s.fs, path)
}

// WriteJSON validates content and writes it pretty-printed inside the managed roots.
func (s *Service) WriteJSON(path string, content []byte) error {
	if err := s.checkPath(path); err != nil {
		return err
	}
	return jsonfile.Write(s.fs, path, content)
}

func (s *Service) checkPath(path string) error {
	clean := filepath.Clean(path)
	for _, root := range []string{s.roots.ServersRoot(), s.roots.ConfigRoot()} {
		rel, err := filepath.Rel(filepath.Clean(root), clean)
		if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOutsideRoot, path)
}

// existing validates name and returns its folder if it exists.
func (s *Service) existing(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	folder := s.folder(name)
	ok, err := afero.DirExists(s.fs, folder)
	if err != nil {
		return "", fmt.Errorf("%w: %v", snapshot.ErrUnreadable, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return folder, nil
}

func (s *Service) appendChangelog(folder, name, file string, at time.Time, changes []changelog.Change) {
	if len(changes) == 0 {
		return
	}
	line := changelog.FormatEntry(at, name, file, changes)
	if err := changelog.Append(s.fs, changelog.Path(folder, name), line); err != nil {
		s.logger.Warn("Failed to append change log", zap.String("server", name), zap.Error(err))
	}
}

func (s *Service) record(ctx context.Context, entry database.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.CreatedAt = s.now()
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("Failed to record audit entry", zap.String("operation", entry.Operation), zap.Error(err))
	}
}
