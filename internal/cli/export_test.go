package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fbxport/internal/config"
	"github.com/roach88/fbxport/internal/document"
	"github.com/roach88/fbxport/internal/fbx"
	"github.com/roach88/fbxport/internal/testutil"
)

// expectedBytes builds the document the CLI writes for path with app.
func expectedBytes(t *testing.T, path string, app document.AppInfo) []byte {
	t.Helper()
	doc := document.Build(document.Options{
		App:         app,
		DocumentURL: path,
		Now:         testutil.FrozenClock(testTime).Now,
		FileIDs:     document.NewFixedFileIDs(testID),
	})
	data, err := doc.Marshal()
	require.NoError(t, err)
	return data
}

func TestExport_Text(t *testing.T) {
	c := newTestCLI(t)

	require.NoError(t, c.run("export", "/out/cube.fbx"))

	got, err := afero.ReadFile(c.fs, "/out/cube.fbx")
	require.NoError(t, err)
	assert.Equal(t, expectedBytes(t, "/out/cube.fbx", config.Default().AppInfo()), got)
	assert.Contains(t, c.stdout.String(), "exported /out/cube.fbx (")
	assert.Contains(t, c.stdout.String(), "xxh64 ")
}

func TestExport_SkipAndOverwrite(t *testing.T) {
	c := newTestCLI(t)
	require.NoError(t, afero.WriteFile(c.fs, "/cube.fbx", []byte("existing"), 0o644))

	require.NoError(t, c.run("export", "/cube.fbx"))
	assert.Contains(t, c.stdout.String(), "skipped /cube.fbx")

	got, err := afero.ReadFile(c.fs, "/cube.fbx")
	require.NoError(t, err)
	assert.Equal(t, "existing", string(got))

	require.NoError(t, c.run("export", "--overwrite", "/cube.fbx"))
	assert.Contains(t, c.stdout.String(), "exported /cube.fbx")

	got, err = afero.ReadFile(c.fs, "/cube.fbx")
	require.NoError(t, err)
	_, err = fbx.Decode(got)
	require.NoError(t, err)
}

func TestExport_JSON(t *testing.T) {
	c := newTestCLI(t)

	require.NoError(t, c.run("--format", "json", "export", "/cube.fbx"))

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Path     string `json:"path"`
			Skipped  bool   `json:"skipped"`
			Size     int    `json:"size"`
			Checksum string `json:"checksum"`
			FileID   string `json:"file_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "/cube.fbx", resp.Data.Path)
	assert.False(t, resp.Data.Skipped)
	assert.Len(t, expectedBytes(t, "/cube.fbx", config.Default().AppInfo()), resp.Data.Size)
	assert.Len(t, resp.Data.Checksum, 16)
	assert.Equal(t, "deadbeef000000000000000000000000", resp.Data.FileID)
}

func TestExport_Config(t *testing.T) {
	c := newTestCLI(t)
	require.NoError(t, afero.WriteFile(c.fs, "/fbxport.yaml", []byte(`
app:
  vendor: Acme
  name: Exporter
  version: 2.1.0
output:
  overwrite: true
`), 0o644))
	require.NoError(t, afero.WriteFile(c.fs, "/cube.fbx", []byte("old"), 0o644))

	require.NoError(t, c.run("--config", "/fbxport.yaml", "export", "/cube.fbx"))

	got, err := afero.ReadFile(c.fs, "/cube.fbx")
	require.NoError(t, err)
	app := document.AppInfo{Vendor: "Acme", Name: "Exporter", Version: "2.1.0"}
	assert.Equal(t, expectedBytes(t, "/cube.fbx", app), got, "config overwrite should replace the file")

	f, err := fbx.Decode(got)
	require.NoError(t, err)
	creator := f.Nodes[3]
	require.Equal(t, "Creator", creator.Name())
	assert.Equal(t, "Exporter 2.1.0", creator.Properties()[0].Value())
}

func TestExport_FlagOverridesConfig(t *testing.T) {
	c := newTestCLI(t)
	require.NoError(t, afero.WriteFile(c.fs, "/fbxport.cue", []byte("output: overwrite: true\n"), 0o644))
	require.NoError(t, afero.WriteFile(c.fs, "/cube.fbx", []byte("old"), 0o644))

	require.NoError(t, c.run("-c", "/fbxport.cue", "export", "--overwrite=false", "/cube.fbx"))
	assert.Contains(t, c.stdout.String(), "skipped")
}

func TestExport_InvalidConfig(t *testing.T) {
	c := newTestCLI(t)
	require.NoError(t, afero.WriteFile(c.fs, "/fbxport.yaml", []byte("outptu: {}\n"), 0o644))

	err := c.run("--config", "/fbxport.yaml", "export", "/cube.fbx")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, c.stdout.String(), "Error [E002]")

	var cfgErr *config.Error
	assert.ErrorAs(t, err, &cfgErr)
}

func TestExport_WriteFailure(t *testing.T) {
	c := newTestCLI(t)
	c.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := c.run("export", "/cube.fbx")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, c.stdout.String(), "Error [E007]")
}

func TestExport_Journal(t *testing.T) {
	c := newTestCLI(t)
	db := filepath.Join(t.TempDir(), "journal.db")

	require.NoError(t, c.run("export", "--journal", db, "/a.fbx"))
	require.NoError(t, c.run("export", "--journal", db, "/b.fbx"))
	require.NoError(t, c.run("export", "--journal", db, "/b.fbx"))
	assert.Contains(t, c.stdout.String(), "skipped", "skipped exports are not journaled")

	require.NoError(t, c.run("--format", "json", "history", "--journal", db))

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID      int64  `json:"id"`
			Path    string `json:"path"`
			Creator string `json:"creator"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(c.stdout.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "/b.fbx", resp.Data[0].Path)
	assert.Equal(t, "/a.fbx", resp.Data[1].Path)
	assert.Equal(t, "fbxport dev", resp.Data[0].Creator)
}
