package sass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
	"github.com/mthadley/magnet-plugin-sass/internal/testutil"
)

type closingCompiler struct {
	*recordingCompiler
	closed bool
}

func (c *closingCompiler) Close() error {
	c.closed = true
	return nil
}

func TestPlugin_Metadata(t *testing.T) {
	md := New(newRecordingCompiler()).Metadata()
	require.NoError(t, md.Validate())
	assert.Equal(t, Name, md.Name)
	assert.Equal(t, plugin.PluginTypeAsset, md.Type)
}

func TestPlugin_TestAlwaysFalse(t *testing.T) {
	p := New(newRecordingCompiler())
	assert.False(t, p.Test())

	host := testutil.NewHost(testutil.NewConfigBuilder(t).WithSources("a.scss").Build(), t.TempDir())
	require.NoError(t, p.Build(context.Background(), host))
	require.NoError(t, p.Start(context.Background(), host))
	assert.False(t, p.Test())
}

func TestPlugin_BuildThenServe(t *testing.T) {
	root := t.TempDir()
	host := testutil.NewHost(testutil.NewConfigBuilder(t).WithSources("styles/app.scss").Build(), root)
	p := New(newRecordingCompiler())

	require.NoError(t, p.Build(context.Background(), host))
	require.NoError(t, p.Start(context.Background(), host))

	rec := httptest.NewRecorder()
	host.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/* app.scss */\n", rec.Body.String())
}

func TestPlugin_RegistersWithRegistry(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register(New(newRecordingCompiler())))
	assert.True(t, reg.Has(Name))
}

func TestPlugin_CleanupClosesCompiler(t *testing.T) {
	c := &closingCompiler{recordingCompiler: newRecordingCompiler()}
	require.NoError(t, New(c).Cleanup())
	assert.True(t, c.closed)
}

func TestFromConfig(t *testing.T) {
	cfg := testutil.NewConfigBuilder(t).WithCompiler(config.CompilerCLI, "/usr/local/bin/sass").Build()
	p, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, Name, p.Metadata().Name)
}
