package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
abilities:
  - id: 1
    name: blink
    behavior: blink
    cooldown: 3
    perks:
      range: 3
  - id: 2
    name: guard
    behavior: guard
    cooldown: 2
units:
  - id: 1
    name: Warden
    role: leader
    attack_value: 8
    position_weight: 4
  - id: 2
    name: Vanguard
    role: hero
    attack_value: 6
    abilities: [1, 2]
`

func TestParseYAML(t *testing.T) {
	c, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	u, err := c.Unit(2)
	require.NoError(t, err)
	assert.Equal(t, "hero", u.Role)
	assert.Equal(t, []int{1, 2}, u.Abilities)

	a, err := c.Ability(1)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Cooldown)
	assert.Equal(t, map[string]int{"range": 3}, a.Perks)
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("units: [id: {"))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	c, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Len(t, c.Units(), 2)

	_, err = LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteYAML_ReadsBack(t *testing.T) {
	c, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.WriteYAML(&buf))

	again, err := ParseYAML(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, c.Units(), again.Units())
	assert.Equal(t, c.Abilities(), again.Abilities())
}

func TestRepositoryCatalogIsValid(t *testing.T) {
	c, err := LoadYAML(filepath.Join("..", "..", "catalog.yaml"))
	require.NoError(t, err)
	assert.NoError(t, c.Validate())
}

func writeYAML(t *testing.T, path string, c *Catalog) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, c.WriteYAML(f))
}
