package servers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"site-settings/core/database"
	"site-settings/core/jsonfile"
	"site-settings/core/jsontree"
	"site-settings/core/snapshot"
	"site-settings/core/workspace"
	"site-settings/feature/templates"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const root = "/srv"

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

type stubTemplates struct {
	content []byte
	source  templates.Source
}

func (s stubTemplates) ResolveWithSource() ([]byte, templates.Source) {
	return s.content, s.source
}

type recorder struct {
	entries []database.AuditEntry
	err     error
}

func (r *recorder) Record(_ context.Context, e database.AuditEntry) error {
	r.entries = append(r.entries, e)
	return r.err
}

// failingFs refuses to open any file whose name contains fail.
type failingFs struct {
	afero.Fs
	fail string
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if strings.Contains(filepath.Base(name), f.fail) {
		return nil, errors.New("disk full")
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func newTestService(fs afero.Fs, opts ...Option) *Service {
	tmpl := stubTemplates{content: []byte(`{"fromTemplate":true}`), source: templates.SourceShared}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(fs, workspace.Static{Config: "/cfg", Servers: root}, tmpl, zap.NewNop(), opts...)
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestList(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root+"/beta", 0755))
	require.NoError(t, fs.MkdirAll(root+"/alpha", 0755))
	require.NoError(t, fs.MkdirAll(root+"/odd.json", 0755))
	require.NoError(t, fs.MkdirAll(root+"/gamma.deleted.20250101_120000", 0755))
	writeFile(t, fs, root+"/stray.json", "{}")

	names, err := newTestService(fs).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestList_MissingRoot(t *testing.T) {
	_, err := newTestService(afero.NewMemMapFs()).List()
	assert.ErrorIs(t, err, snapshot.ErrUnreadable)
}

func TestCreate_Minimal(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := &recorder{}
	svc := newTestService(fs, WithAudit(rec))

	path, err := svc.Create(context.Background(), "PROD-1", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "PROD-1", "PROD-1_20250314.json"), path)

	written, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, string(templates.Minimal()), string(written))

	require.Len(t, rec.entries, 1)
	assert.Equal(t, database.OpCreate, rec.entries[0].Operation)
	assert.Equal(t, "PROD-1", rec.entries[0].Server)
	assert.Equal(t, fixedNow, rec.entries[0].CreatedAt)
}

func TestCreate_FromTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	path, err := newTestService(fs).Create(context.Background(), "alpha", true)
	require.NoError(t, err)

	written, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"fromTemplate\": true\n}", string(written))
}

func TestCreate_Existing(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)

	_, err := svc.Create(context.Background(), "alpha", false)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "alpha", false)
	assert.ErrorIs(t, err, ErrTargetExists)

	// An empty folder is seeded instead of refused.
	require.NoError(t, fs.MkdirAll(root+"/empty", 0755))
	_, err = svc.Create(context.Background(), "empty", false)
	assert.NoError(t, err)
}

func TestCreate_InvalidName(t *testing.T) {
	_, err := newTestService(afero.NewMemMapFs()).Create(context.Background(), "../escape", false)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestSave_NeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alpha", false)
	require.NoError(t, err)

	first, err := svc.Save(ctx, "alpha", []byte(`{"logoutAfter":30}`))
	require.NoError(t, err)
	second, err := svc.Save(ctx, "alpha", []byte(`{"logoutAfter":60}`))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "alpha", "alpha_20250314_103000.json"), first)
	assert.Equal(t, filepath.Join(root, "alpha", "alpha_20250314_103000_002.json"), second)

	original, err := afero.ReadFile(fs, created)
	require.NoError(t, err)
	assert.Equal(t, string(templates.Minimal()), string(original))

	names, err := svc.Snapshots("alpha")
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestSave_LatestAfterManySameSecondSaves(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root+"/alpha", 0755))
	svc := newTestService(fs)
	ctx := context.Background()

	var last string
	for i := 0; i < 12; i++ {
		p, err := svc.Save(ctx, "alpha", []byte(fmt.Sprintf(`{"n":%d}`, i)))
		require.NoError(t, err)
		last = p
	}

	latest, err := svc.Latest("alpha")
	require.NoError(t, err)
	assert.Equal(t, last, latest.Path)
	assert.JSONEq(t, `{"n":11}`, string(latest.Content))
}

func TestSave_PrettyPrintsAndKeepsOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root+"/alpha", 0755))

	path, err := newTestService(fs).Save(context.Background(), "alpha", []byte(`{"z":1,"a":{"y":[1,2]}}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "alpha", "alpha_20250314.json"), path)

	written, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": {\n    \"y\": [\n      1,\n      2\n    ]\n  }\n}", string(written))
}

func TestSave_Rejected(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root+"/alpha", 0755))
	svc := newTestService(fs)

	_, err := svc.Save(context.Background(), "alpha", []byte(`{"a":`))
	assert.ErrorIs(t, err, jsonfile.ErrInvalidJSON)
	names, err := snapshot.List(fs, root+"/alpha")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = svc.Save(context.Background(), "ghost", []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_AppendsChangelog(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alpha", false)
	require.NoError(t, err)
	path, err := svc.Save(ctx, "alpha", []byte(`{"defaultCompanyId":"","multiCompany":true,"useIPPermit":false,"checkPushToken":true,"logoutAfter":14,"extra":1}`))
	require.NoError(t, err)

	text, err := svc.Changelog("alpha")
	require.NoError(t, err)
	assert.Equal(t,
		"[2025-03-14 10:30:00] server: alpha, file: "+filepath.Base(path)+", changes: modified: multiCompany false -> true; added: extra = 1\n",
		text)
}

func TestLatest(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{"v":1}`)
	writeFile(t, fs, root+"/alpha/alpha_20250301.json", `{"v":3}`)
	writeFile(t, fs, root+"/alpha/notes.txt", `x`)
	svc := newTestService(fs)

	latest, err := svc.Latest("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha_20250301.json", latest.File)
	assert.Equal(t, `{"v":3}`, string(latest.Content))

	require.NoError(t, fs.MkdirAll(root+"/empty", 0755))
	_, err = svc.Latest("empty")
	assert.ErrorIs(t, err, snapshot.ErrNoSnapshots)

	_, err = svc.Latest("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCopy_RewritesNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	source := `{"name":"alpha","alphaKey":"https://alpha.example/alpha","port":8080,"nested":{"list":["alpha-1",2,true,null]}}`
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", source)
	writeFile(t, fs, root+"/alpha/changelog_alpha.log", "server: alpha\n")
	require.NoError(t, fs.MkdirAll(root+"/alpha/nested", 0755))
	rec := &recorder{}

	count, err := newTestService(fs, WithAudit(rec)).Copy(context.Background(), "alpha", "beta")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	copied, err := jsonfile.ReadTree(fs, root+"/beta/beta_20250101.json")
	require.NoError(t, err)
	expected, err := jsontree.Parse([]byte(`{"name":"beta","alphaKey":"https://beta.example/beta","port":8080,"nested":{"list":["beta-1",2,true,null]}}`))
	require.NoError(t, err)
	assert.True(t, jsontree.Equal(expected, copied))

	// Reversing the replacement restores the source document.
	original, err := jsontree.Parse([]byte(source))
	require.NoError(t, err)
	assert.True(t, jsontree.Equal(original, jsontree.ReplaceStrings(copied, "beta", "alpha")))

	log, err := afero.ReadFile(fs, root+"/beta/changelog_beta.log")
	require.NoError(t, err)
	assert.Equal(t, "server: alpha\n", string(log))

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "beta", rec.entries[0].Target)
}

func TestCopy_Preconditions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{}`)
	writeFile(t, fs, root+"/beta/beta_20250101.json", `{"keep":true}`)
	svc := newTestService(fs)

	_, err := svc.Copy(context.Background(), "ghost", "x")
	assert.ErrorIs(t, err, ErrSourceMissing)

	_, err = svc.Copy(context.Background(), "alpha", "beta")
	assert.ErrorIs(t, err, ErrTargetExists)
	names, err := snapshot.List(fs, root+"/beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta_20250101.json"}, names)

	_, err = svc.Copy(context.Background(), "alpha", "a/b")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestCopy_RollsBack(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, root+"/alpha/alpha_20250101.json", `{}`)
	writeFile(t, mem, root+"/alpha/alpha_20250102.json", `{}`)
	fs := failingFs{Fs: mem, fail: "beta_20250102"}

	_, err := newTestService(fs).Copy(context.Background(), "alpha", "beta")
	assert.ErrorIs(t, err, jsonfile.ErrUnwritable)

	exists, err := afero.Exists(mem, root+"/beta")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopy_RenameCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{"name":"alpha"}`)
	writeFile(t, fs, root+"/alpha/beta_20250101.json", `{"name":"beta"}`)

	count, err := newTestService(fs).Copy(context.Background(), "alpha", "beta")
	assert.ErrorIs(t, err, ErrTargetExists)
	assert.Equal(t, 0, count)

	exists, err := afero.Exists(fs, root+"/beta")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopy_InvalidJSONVerbatim(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{alpha`)

	count, err := newTestService(fs).Copy(context.Background(), "alpha", "beta")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := afero.ReadFile(fs, root+"/beta/beta_20250101.json")
	require.NoError(t, err)
	assert.Equal(t, `{alpha`, string(data))
}

func TestDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{}`)
	svc := newTestService(fs)

	backup, err := svc.Delete(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "alpha.deleted.20250314_103000"), backup)

	ok, err := afero.Exists(fs, filepath.Join(backup, "alpha_20250101.json"))
	require.NoError(t, err)
	assert.True(t, ok)

	names, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = svc.Delete(context.Background(), "alpha")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_RenameFailed(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, root+"/alpha/alpha_20250101.json", `{}`)

	_, err := newTestService(afero.NewReadOnlyFs(mem)).Delete(context.Background(), "alpha")
	assert.ErrorIs(t, err, ErrRenameFailed)
}

func TestMissingTemplateItems(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{"other":1}`)

	items, err := newTestService(fs).MissingTemplateItems("alpha")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fromTemplate", items[0].Key)
	assert.Equal(t, "bool", items[0].Type)
}

func TestJSONPaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)

	require.NoError(t, svc.WriteJSON(root+"/alpha/extra.json", []byte(`{"a":1}`)))
	content, err := svc.ReadJSON(root + "/alpha/extra.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(content))

	_, err = svc.ReadJSON("/etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideRoot)
	assert.ErrorIs(t, svc.WriteJSON(root+"/../escape.json", []byte(`{}`)), ErrOutsideRoot)
	assert.ErrorIs(t, svc.WriteJSON("/cfg/bad.json", []byte(`nope`)), jsonfile.ErrInvalidJSON)
}
