package store

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amadiallo/solsize/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "solsize.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRegistry(t *testing.T) *engine.Registry {
	t.Helper()
	reg := engine.NewRegistry()
	require.NoError(t, reg.Add("fridge", 150, 24, 0))
	require.NoError(t, reg.Add("tv", 100, 4, 18))
	require.NoError(t, reg.Add("pump", 750, 1.5, 8))
	return reg
}

func TestSaveAndLoadConfiguration(t *testing.T) {
	s := newTestStore(t)
	reg := sampleRegistry(t)

	require.NoError(t, s.SaveConfiguration("home", reg))

	loaded, err := s.LoadConfiguration("home")
	require.NoError(t, err)
	assert.Equal(t, reg.List(), loaded.List(), "order and fields must round-trip")
	assert.Equal(t, reg.TotalEnergy(), loaded.TotalEnergy())
}

func TestSaveConfigurationReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveConfiguration("home", sampleRegistry(t)))

	smaller := engine.NewRegistry()
	require.NoError(t, smaller.Add("lamp", 20, 6, 17))
	require.NoError(t, s.SaveConfiguration("home", smaller))

	loaded, err := s.LoadConfiguration("home")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	_, found := loaded.Find("fridge")
	assert.False(t, found, "old appliances must not survive a re-save")
}

func TestLoadUnknownConfigurationIsEmpty(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.LoadConfiguration("never-saved")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestListAndDeleteConfigurations(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveConfiguration("home", sampleRegistry(t)))
	require.NoError(t, s.SaveConfiguration("cabin", engine.NewRegistry()))

	configs, err := s.ListConfigurations()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	byName := map[string]Configuration{}
	for _, c := range configs {
		byName[c.Name] = c
	}
	assert.Equal(t, 3, byName["home"].Count)
	assert.Equal(t, 0, byName["cabin"].Count)

	require.NoError(t, s.DeleteConfiguration("home"))
	configs, err = s.ListConfigurations()
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "cabin", configs[0].Name)
}

func TestExportImportJSONRoundTrip(t *testing.T) {
	reg := sampleRegistry(t)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, "home", reg))

	name, imported, err := ImportJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "home", name)
	assert.Equal(t, reg.List(), imported.List())
}

func TestImportJSONDefaultsMissingStartHour(t *testing.T) {
	// Files written before start hours existed omit the field
	legacy := `{
		"name": "old",
		"timestamp": "2023-01-15T10:00:00",
		"equipments": [
			{"name": "fridge", "power": 150, "time": 24},
			{"name": "tv", "power": 100, "time": 4, "start_hour": 18}
		]
	}`

	name, reg, err := ImportJSON(strings.NewReader(legacy))
	require.NoError(t, err)
	assert.Equal(t, "old", name)

	fridge, ok := reg.Find("fridge")
	require.True(t, ok)
	assert.Equal(t, 0, fridge.StartHour)

	tv, ok := reg.Find("tv")
	require.True(t, ok)
	assert.Equal(t, 18, tv.StartHour)
}

func TestImportJSONRejectsDuplicates(t *testing.T) {
	dup := `{"name": "bad", "equipments": [
		{"name": "fridge", "power": 150, "time": 24},
		{"name": "fridge", "power": 100, "time": 4}
	]}`

	_, _, err := ImportJSON(strings.NewReader(dup))
	require.ErrorIs(t, err, engine.ErrDuplicateName)
}
