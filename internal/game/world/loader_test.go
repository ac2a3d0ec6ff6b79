package world_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
	"github.com/RedNetty/YakRealms-sub014/internal/game/world"
)

const arenaYAML = `
arena:
  name: scorched_hollow
  floor_y: 64
  features:
    - kind: lava_pool
      min_x: 20
      max_x: 30
      min_z: 20
      max_z: 30
    - kind: pillar
      min_x: 5
      max_x: 6
      min_z: 5
      max_z: 6
      height: 4
`

func TestLoadArenaFromBytes(t *testing.T) {
	a, err := world.LoadArenaFromBytes([]byte(arenaYAML))
	require.NoError(t, err)

	assert.Equal(t, "scorched_hollow", a.Name)
	assert.Equal(t, 64.0, a.FloorY)
	require.Len(t, a.Features, 2)
	assert.Equal(t, world.KindLavaPool, a.Features[0].Kind)
	assert.Equal(t, elite.MaterialLava, a.Sample(25, 63, 25))
}

func TestLoadArenaFromBytes_Invalid(t *testing.T) {
	_, err := world.LoadArenaFromBytes([]byte("{bad yaml"))
	assert.Error(t, err)

	_, err = world.LoadArenaFromBytes([]byte("arena:\n  floor_y: 10\n"))
	assert.Error(t, err, "missing name")

	_, err = world.LoadArenaFromBytes([]byte("arena:\n  name: x\n  features:\n    - kind: swamp\n"))
	assert.Error(t, err)
}

func TestLoadArenaFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hollow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(arenaYAML), 0o644))

	a, err := world.LoadArenaFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "scorched_hollow", a.Name)

	_, err = world.LoadArenaFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
