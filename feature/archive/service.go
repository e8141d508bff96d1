package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"site-settings/core/storage"
	"site-settings/core/workspace"
	"site-settings/feature/servers"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	extension   = ".tar.gz"
	stampLayout = "20060102_150405"
)

var (
	// ErrDisabled is returned when no storage client is configured.
	ErrDisabled = errors.New("archive storage disabled")
	// ErrInvalidKey is returned for object keys outside the server prefix.
	ErrInvalidKey = errors.New("invalid archive key")
)

// Object is one stored archive.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Result describes an uploaded archive.
type Result struct {
	Key   string `json:"key"`
	Files int    `json:"files"`
	Size  int64  `json:"size"`
}

// Service moves server folders to and from the archive bucket.
type Service struct {
	fs     afero.Fs
	roots  workspace.RootProvider
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new archive service. A nil client disables every operation.
func NewService(fs afero.Fs, roots workspace.RootProvider, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		fs:     fs,
		roots:  roots,
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the object key of an archive taken at t.
func Key(name string, t time.Time) string {
	return name + "/" + name + "_" + t.Format(stampLayout) + extension
}

// Upload packs the server folder and stores it in the bucket.
func (s *Service) Upload(ctx context.Context, name string) (*Result, error) {
	folder, err := s.folder(name)
	if err != nil {
		return nil, err
	}
	if ok, _ := afero.DirExists(s.fs, folder); !ok {
		return nil, fmt.Errorf("%w: %s", servers.ErrNotFound, name)
	}

	var buf bytes.Buffer
	files, err := s.pack(&buf, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", name, err)
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return nil, err
	}

	key := Key(name, s.now())
	size := int64(buf.Len())
	if _, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(buf.Bytes()), size, minio.PutObjectOptions{
		ContentType: "application/gzip",
	}); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Info("Server archived", zap.String("server", name), zap.String("key", key), zap.Int("files", files))
	return &Result{Key: key, Files: files, Size: size}, nil
}

func (s *Service) pack(w io.Writer, folder string) (int, error) {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	files := 0
	err := afero.Walk(s.fs, folder, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(folder, p)
		if err != nil {
			return err
		}
		hdr := &tar.Header{
			Name:    filepath.ToSlash(rel),
			Mode:    0644,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := s.fs.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return 0, err
	}
	if err := tw.Close(); err != nil {
		return 0, err
	}
	return files, gz.Close()
}

// List returns the archives of a server, newest first.
func (s *Service) List(ctx context.Context, name string) ([]Object, error) {
	if _, err := s.folder(name); err != nil {
		return nil, err
	}

	var objects []Object
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: name + "/", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archives: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, extension) {
			continue
		}
		objects = append(objects, Object{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key > objects[j].Key })
	return objects, nil
}

// Restore unpacks an archive into the server folder, which must not exist.
// A failed restore leaves no folder behind.
func (s *Service) Restore(ctx context.Context, name, key string) (int, error) {
	folder, err := s.folder(name)
	if err != nil {
		return 0, err
	}
	if !strings.HasPrefix(key, name+"/") || !strings.HasSuffix(key, extension) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if exists, _ := afero.Exists(s.fs, folder); exists {
		return 0, fmt.Errorf("%w: %s", servers.ErrTargetExists, name)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer obj.Close()

	files, err := s.unpack(obj, folder)
	if err != nil {
		if rmErr := s.fs.RemoveAll(folder); rmErr != nil {
			s.logger.Error("Failed to remove partial restore", zap.String("path", folder), zap.Error(rmErr))
		}
		return 0, fmt.Errorf("failed to restore %s: %w", key, err)
	}

	s.logger.Info("Server restored", zap.String("server", name), zap.String("key", key), zap.Int("files", files))
	return files, nil
}

func (s *Service) unpack(r io.Reader, folder string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer gz.Close()

	if err := s.fs.MkdirAll(folder, 0755); err != nil {
		return 0, err
	}

	tr := tar.NewReader(gz)
	files := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return 0, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name := path.Clean(hdr.Name)
		if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
			return 0, fmt.Errorf("entry escapes folder: %s", hdr.Name)
		}
		target := filepath.Join(folder, filepath.FromSlash(name))
		if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return 0, err
		}
		f, err := s.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, err
		}
		_, err = io.Copy(f, tr)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return 0, err
		}
		files++
	}
}

// Prune removes all but the newest keep archives of a server and returns how many were removed.
func (s *Service) Prune(ctx context.Context, name string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	objects, err := s.List(ctx, name)
	if err != nil {
		return 0, err
	}
	if len(objects) <= keep {
		return 0, nil
	}

	removed := 0
	for _, obj := range objects[keep:] {
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
		removed++
	}
	s.logger.Info("Archives pruned", zap.String("server", name), zap.Int("removed", removed))
	return removed, nil
}

func (s *Service) folder(name string) (string, error) {
	if s.client == nil {
		return "", ErrDisabled
	}
	if err := servers.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	return filepath.Join(s.roots.ServersRoot(), name), nil
}
