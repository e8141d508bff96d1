package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"site-settings/core/storage"
	"site-settings/core/storage/mocks"
	"site-settings/core/workspace"
	"site-settings/feature/servers"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestService(fs afero.Fs, client storage.Client) *Service {
	svc := NewService(fs, workspace.Static{Config: "/cfg", Servers: "/srv"}, client, storage.Config{Bucket: "bucket"}, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestKey(t *testing.T) {
	assert.Equal(t, "alpha/alpha_20250314_103000.tar.gz", Key("alpha", fixedNow))
}

func TestUploadAndRestore(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/alpha/alpha_20250101.json", []byte(`{"a":1}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/srv/alpha/changelog_alpha.log", []byte("line\n"), 0644))

	var stored []byte
	m := new(mocks.Client)
	m.On("BucketExists", ctx, "bucket").Return(true, nil)
	m.On("PutObject", ctx, "bucket", "alpha/alpha_20250314_103000.tar.gz", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	svc := newTestService(fs, m)
	res, err := svc.Upload(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, int64(len(stored)), res.Size)

	m.On("GetObject", ctx, "bucket", res.Key, minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader(stored)), nil)

	_, err = svc.Restore(ctx, "alpha", "alpha/alpha_20250314_103000.tar.gz")
	assert.ErrorIs(t, err, servers.ErrTargetExists)

	require.NoError(t, fs.RemoveAll("/srv/alpha"))
	files, err := svc.Restore(ctx, "alpha", res.Key)
	require.NoError(t, err)
	assert.Equal(t, 2, files)

	restored, err := afero.ReadFile(fs, "/srv/alpha/alpha_20250101.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(restored))
	m.AssertExpectations(t)
}

func TestUpload_MissingServer(t *testing.T) {
	_, err := newTestService(afero.NewMemMapFs(), new(mocks.Client)).Upload(context.Background(), "ghost")
	assert.ErrorIs(t, err, servers.ErrNotFound)
}

func TestRestore_CorruptArchiveLeavesNothing(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	m := new(mocks.Client)
	m.On("GetObject", ctx, "bucket", "alpha/alpha_1.tar.gz", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader([]byte("not gzip"))), nil)

	_, err := newTestService(fs, m).Restore(ctx, "alpha", "alpha/alpha_1.tar.gz")
	assert.Error(t, err)
	exists, _ := afero.Exists(fs, "/srv/alpha")
	assert.False(t, exists)

	_, err = newTestService(fs, m).Restore(ctx, "alpha", "beta/beta_1.tar.gz")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestListAndPrune(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	opts := minio.ListObjectsOptions{Prefix: "alpha/", Recursive: true}
	m.On("ListObjects", ctx, "bucket", opts).Return(mocks.Objects(
		minio.ObjectInfo{Key: "alpha/alpha_20250101_000000.tar.gz"},
		minio.ObjectInfo{Key: "alpha/alpha_20250301_000000.tar.gz"},
		minio.ObjectInfo{Key: "alpha/notes.txt"},
		minio.ObjectInfo{Key: "alpha/alpha_20250201_000000.tar.gz"},
	)).Once()
	svc := newTestService(afero.NewMemMapFs(), m)

	objects, err := svc.List(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "alpha/alpha_20250301_000000.tar.gz", objects[0].Key)

	m.On("ListObjects", ctx, "bucket", opts).Return(mocks.Objects(
		minio.ObjectInfo{Key: "alpha/alpha_20250101_000000.tar.gz"},
		minio.ObjectInfo{Key: "alpha/alpha_20250301_000000.tar.gz"},
	)).Once()
	m.On("RemoveObject", ctx, "bucket", "alpha/alpha_20250101_000000.tar.gz", minio.RemoveObjectOptions{}).Return(nil)

	removed, err := svc.Prune(ctx, "alpha", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	m.AssertExpectations(t)
}

func TestList_Error(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("ListObjects", ctx, "bucket", mock.Anything).Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("denied")}))

	_, err := newTestService(afero.NewMemMapFs(), m).List(ctx, "alpha")
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	svc := newTestService(afero.NewMemMapFs(), nil)
	_, err := svc.Upload(context.Background(), "alpha")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, NewFeature(svc).IsEnabled())

	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))
	resp, err := app.Test(httptest.NewRequest("GET", "/archive/alpha", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
