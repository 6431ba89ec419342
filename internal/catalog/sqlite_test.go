package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	src, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, src))
	require.NoError(t, s.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, src.Units(), got.Units())
	assert.Equal(t, src.Abilities(), got.Abilities())
}

func TestStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer s.Close()

	units, abilities := sampleDefs()
	first, err := New(units, abilities)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, first))

	second, err := New(units[:1], abilities[2:])
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Units(), 1)
	assert.Len(t, got.Abilities(), 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "catalog.yaml")
	src, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)
	writeYAML(t, yamlPath, src)

	c, err := Open(ctx, SourceYAML, yamlPath)
	require.NoError(t, err)
	assert.Len(t, c.Units(), 2)

	dbPath := filepath.Join(dir, "catalog.db")
	s, err := OpenStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, src))
	require.NoError(t, s.Close())

	c, err = Open(ctx, SourceSQLite, dbPath)
	require.NoError(t, err)
	assert.Len(t, c.Abilities(), 2)

	_, err = Open(ctx, "postgres", dbPath)
	assert.Error(t, err)
}

func TestOpen_ValidatesCatalog(t *testing.T) {
	units, abilities := sampleDefs()
	units[1].Abilities = []int{99}
	bad, err := New(units, abilities)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeYAML(t, path, bad)

	_, err = Open(context.Background(), SourceYAML, path)
	assert.ErrorIs(t, err, ErrUnknownAbility)
}
