package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figkit/figkit"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	cfg := figkit.DefaultConfig()
	cfg.ChartType = figkit.TypeBar
	cfg.Title = "Quarterly"
	cfg.YColumns = []string{"revenue"}

	require.NoError(t, s.Save("quarterly", "bars per quarter", cfg))

	got, err := s.Load("quarterly")
	require.NoError(t, err)
	assert.Equal(t, "quarterly", got.Name)
	assert.Equal(t, "bars per quarter", got.Description)
	assert.False(t, got.Builtin)
	assert.Equal(t, cfg.ChartType, got.Config.ChartType)
	assert.Equal(t, cfg.Title, got.Config.Title)
	assert.Equal(t, cfg.YColumns, got.Config.YColumns)
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save("tmp", "", figkit.DefaultConfig()))
	require.NoError(t, s.Delete("tmp"))
	_, err := s.Load("tmp")
	assert.Error(t, err)

	err = s.Delete("tmp")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuiltinsAlwaysListed(t *testing.T) {
	s := testStore(t)
	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, len(builtinNames))
	for i, name := range builtinNames {
		assert.Equal(t, name, entries[i].Name)
		assert.True(t, entries[i].Builtin)
		assert.NotEmpty(t, entries[i].Description)
	}
}

func TestBuiltinsProtected(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.Save("line_clean", "", figkit.DefaultConfig()))
	assert.Error(t, s.Delete("line_clean"))

	got, err := s.Load("line_clean")
	require.NoError(t, err)
	assert.True(t, got.Builtin)
	assert.Equal(t, "minimal", got.Config.Theme)
}

func TestInvalidNames(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, s.Save(name, "", figkit.DefaultConfig()), name)
	}
}

func TestListMergesSaved(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save("zz_custom", "", figkit.DefaultConfig()))
	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, len(builtinNames)+1)
	assert.Equal(t, "zz_custom", entries[len(entries)-1].Name)
}
