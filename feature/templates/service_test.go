package templates

import (
	"path/filepath"
	"testing"

	"site-settings/core/jsonfile"
	"site-settings/core/workspace"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(fs afero.Fs) *Service {
	return NewService(fs, workspace.Static{Config: "/cfg"}, zap.NewNop())
}

func TestResolve_Personal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/template.json", []byte(`{"mine":true}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/cfg/default_template.json", []byte(`{"team":true}`), 0644))

	content, source := newTestService(fs).ResolveWithSource()
	assert.Equal(t, `{"mine":true}`, string(content))
	assert.Equal(t, SourcePersonal, source)
}

func TestResolve_SharedWhenPersonalInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/template.json", []byte(`{broken`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/cfg/default_template.json", []byte(`{"team":true}`), 0644))

	content, source := newTestService(fs).ResolveWithSource()
	assert.Equal(t, `{"team":true}`, string(content))
	assert.Equal(t, SourceShared, source)
}

func TestResolve_BuiltinIsMaterialized(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)

	first, source := svc.ResolveWithSource()
	assert.Equal(t, SourceBuiltin, source)
	assert.Equal(t, Minimal(), first)

	written, err := afero.ReadFile(fs, "/cfg/template.json")
	require.NoError(t, err)
	assert.Equal(t, Minimal(), written)

	// Later calls are served from the personal tier with identical content.
	for i := 0; i < 3; i++ {
		again, source := svc.ResolveWithSource()
		assert.Equal(t, SourcePersonal, source)
		assert.Equal(t, first, again)
	}
}

func TestResolve_BuiltinWhenWriteFails(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	content, source := newTestService(fs).ResolveWithSource()
	assert.Equal(t, SourceBuiltin, source)
	assert.Equal(t, Minimal(), content)
}

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs, workspace.Static{Config: "/fresh/dir"}, zap.NewNop())

	require.NoError(t, svc.Save([]byte(`{"b":1,"a":2}`)))
	written, err := afero.ReadFile(fs, filepath.Join("/fresh/dir", "template.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": 2\n}", string(written))

	err = svc.Save([]byte(`nope`))
	assert.ErrorIs(t, err, jsonfile.ErrInvalidJSON)
}

func TestWithFileNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs, workspace.Static{Config: "/cfg"}, zap.NewNop(), WithFileNames("mine.json", "team.json"))
	assert.Equal(t, "/cfg/mine.json", svc.PersonalPath())
	assert.Equal(t, "/cfg/team.json", svc.SharedPath())
}

func TestMinimalIsValid(t *testing.T) {
	_, err := jsonfile.Pretty(Minimal())
	assert.NoError(t, err)

	tree, err := newTestService(afero.NewMemMapFs()).Tree()
	require.NoError(t, err)
	assert.True(t, tree.Has("logoutAfter"))
}
