package workspace

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const localDirName = "sitesettings"

// RootProvider supplies the directories the configuration engine works in.
type RootProvider interface {
	// ConfigRoot is the directory holding the template tiers.
	ConfigRoot() string
	// ServersRoot is the directory whose subdirectories are servers.
	ServersRoot() string
}

// Resolver implements RootProvider on top of a filesystem and Config.
type Resolver struct {
	fs     afero.Fs
	cfg    Config
	logger *zap.Logger
}

// NewResolver creates a new resolver.
func NewResolver(fs afero.Fs, cfg Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fs: fs, cfg: cfg, logger: logger}
}

// ConfigRoot returns the network path if it can be created, else the local directory.
// Creating the local directory is best-effort.
func (r *Resolver) ConfigRoot() string {
	if r.cfg.NetworkPath != "" {
		err := r.fs.MkdirAll(r.cfg.NetworkPath, 0755)
		if err == nil {
			return r.cfg.NetworkPath
		}
		r.logger.Debug("Network config path unavailable, using local fallback",
			zap.String("path", r.cfg.NetworkPath), zap.Error(err))
	}

	local := r.localDir()
	if err := r.fs.MkdirAll(local, 0755); err != nil {
		r.logger.Warn("Failed to create local config path", zap.String("path", local), zap.Error(err))
	}
	return local
}

// ServersRoot returns the configured root dir, or ConfigRoot when unset.
func (r *Resolver) ServersRoot() string {
	if r.cfg.RootDir != "" {
		return r.cfg.RootDir
	}
	return r.ConfigRoot()
}

// Lookup returns a RootProvider that resolves the same directories as r
// without creating any of them. The network path is used only when it
// already exists.
func (r *Resolver) Lookup() RootProvider {
	return lookup{r: r}
}

type lookup struct {
	r *Resolver
}

func (l lookup) ConfigRoot() string {
	if p := l.r.cfg.NetworkPath; p != "" {
		if ok, _ := afero.DirExists(l.r.fs, p); ok {
			return p
		}
	}
	return l.r.localDir()
}

func (l lookup) ServersRoot() string {
	if l.r.cfg.RootDir != "" {
		return l.r.cfg.RootDir
	}
	return l.ConfigRoot()
}

// PersonalTemplateName returns the personal template file name.
func (r *Resolver) PersonalTemplateName() string {
	return orDefault(r.cfg.PersonalTemplate, "template.json")
}

// SharedTemplateName returns the shared template file name.
func (r *Resolver) SharedTemplateName() string {
	return orDefault(r.cfg.SharedTemplate, "default_template.json")
}

func (r *Resolver) localDir() string {
	if r.cfg.LocalDir != "" {
		return r.cfg.LocalDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return localDirName
	}
	return filepath.Join(home, localDirName)
}

// Static is a RootProvider with fixed directories.
type Static struct {
	Config  string
	Servers string
}

// ConfigRoot implements RootProvider.
func (s Static) ConfigRoot() string { return s.Config }

// ServersRoot implements RootProvider.
func (s Static) ServersRoot() string {
	if s.Servers == "" {
		return s.Config
	}
	return s.Servers
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
