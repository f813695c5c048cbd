package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

func sample() []model.Company {
	return []model.Company{{
		Name:    "Acme Inc",
		Founded: model.StringPtr("2019"),
		People: []model.Person{{
			Role:  "Co-Founder & CTO",
			Name:  "Jane Doe",
			Email: model.StringPtr("jane@acme.com"),
		}},
	}}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "enriched.json")

	require.NoError(t, Write(path, sample()))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Acme Inc", loaded[0].Name)
	require.Len(t, loaded[0].People, 1)
	assert.Equal(t, "jane@acme.com", *loaded[0].People[0].Email)
}

func TestWriteIsPrettyPrintedArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "enriched.json")
	require.NoError(t, Write(path, sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Equal(t, byte('['), data[0])
	assert.Contains(t, string(data), "\n  ")
}

func TestWriteNilCollection(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "enriched.json")
	require.NoError(t, Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestWriteReplacesAtomically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "enriched.json")

	require.NoError(t, Write(path, sample()))

	second := sample()
	second = append(second, model.Company{Name: "Globex"})
	require.NoError(t, Write(path, second))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	loaded, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Acme"`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
