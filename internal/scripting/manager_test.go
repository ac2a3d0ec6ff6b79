package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RedNetty/YakRealms-sub014/internal/scripting"
)

func newManager(t *testing.T) *scripting.Manager {
	t.Helper()
	m := scripting.NewManager(zap.NewNop())
	t.Cleanup(m.Close)
	return m
}

func TestCallGate_TrueAndFalse(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.LoadArchetypeSource("brute", `
function desperate_only(id, health, targets)
    return health < 0.5
end
`, 0))

	assert.True(t, m.CallGate("brute", "desperate_only", "c1", 0.2, 3))
	assert.False(t, m.CallGate("brute", "desperate_only", "c1", 0.9, 3))
}

func TestCallGate_UndefinedGateFails(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.LoadArchetypeSource("brute", `x = 1`, 0))
	assert.False(t, m.CallGate("brute", "nope", "c1", 1.0, 1))
}

func TestCallGate_UnknownArchetypeFails(t *testing.T) {
	m := newManager(t)
	assert.False(t, m.CallGate("ghost", "anything", "c1", 1.0, 1))
}

func TestCallGate_RuntimeErrorFails(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.LoadArchetypeSource("brute", `
function broken(id, health, targets)
    error("boom")
end
`, 0))
	assert.False(t, m.CallGate("brute", "broken", "c1", 1.0, 1))
}

func TestCallGate_NonBooleanReturnFails(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.LoadArchetypeSource("brute", `
function numeric(id, health, targets)
    return 42
end
`, 0))
	assert.False(t, m.CallGate("brute", "numeric", "c1", 1.0, 1))
}

func TestCallGate_InstructionLimit(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.LoadArchetypeSource("brute", `
function spin(id, health, targets)
    while true do end
end
`, 1000))
	// The runaway loop hits the opcode limit and fails the gate instead of hanging.
	assert.False(t, m.CallGate("brute", "spin", "c1", 1.0, 1))
}

func TestLoadArchetype_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gates.lua"), []byte(`
function always(id, health, targets)
    return true
end
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	m := newManager(t)
	require.NoError(t, m.LoadArchetype("warden", dir, 0))
	assert.True(t, m.CallGate("warden", "always", "c1", 1.0, 0))
}

func TestLoadArchetype_BadLuaFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`function (`), 0o600))

	m := newManager(t)
	assert.Error(t, m.LoadArchetype("warden", dir, 0))
}

func TestSandbox_DangerousGlobalsRemoved(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.LoadArchetypeSource("brute", `
function probe(id, health, targets)
    return dofile == nil and loadfile == nil and require == nil
end
`, 0))
	assert.True(t, m.CallGate("brute", "probe", "c1", 1.0, 1))
}
