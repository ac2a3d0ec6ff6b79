package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns one sandboxed LState per archetype and exposes gate dispatch.
//
// Manager is safe for concurrent CallGate after all LoadArchetype calls
// complete. Each archetype's LState is single-threaded; the read lock
// serializes concurrent calls to the same archetype while allowing different
// archetypes to run concurrently.
type Manager struct {
	mu      sync.RWMutex
	states  map[string]*lua.LState
	cancels map[string]func()
	logger  *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty archetype map.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		states:  make(map[string]*lua.LState),
		cancels: make(map[string]func()),
		logger:  logger,
	}
}

// LoadArchetype creates a sandboxed VM for archetype, registers the sim.*
// module, then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: archetype must be non-empty; scriptDir must be a readable directory.
// Postcondition: Archetype VM is registered; returns error on Lua load failure.
func (m *Manager) LoadArchetype(archetype, scriptDir string, instLimit int) error {
	L, cancel := newSandboxedState(instLimit)
	m.registerModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, archetype, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, archetype, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[archetype]; ok {
		if oldCancel := m.cancels[archetype]; oldCancel != nil {
			oldCancel()
		}
		old.Close()
	}
	m.states[archetype] = L
	m.cancels[archetype] = cancel
	m.mu.Unlock()
	return nil
}

// LoadArchetypeSource compiles raw Lua source into the archetype's VM. Used by
// tests and embedded content.
//
// Precondition: archetype must be non-empty.
func (m *Manager) LoadArchetypeSource(archetype, source string, instLimit int) error {
	L, cancel := newSandboxedState(instLimit)
	m.registerModules(L)

	if err := L.DoString(source); err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: compiling source for %q: %w", archetype, err)
	}

	m.mu.Lock()
	if old, ok := m.states[archetype]; ok {
		if oldCancel := m.cancels[archetype]; oldCancel != nil {
			oldCancel()
		}
		old.Close()
	}
	m.states[archetype] = L
	m.cancels[archetype] = cancel
	m.mu.Unlock()
	return nil
}

// CallGate calls the named Lua gate function in archetype's VM with the
// combatant's ID, health fraction, and visible target count. The gate admits
// the ability only when it returns true.
//
// An unknown archetype, an undefined gate, or a Lua runtime error all fail the
// gate (the ability is simply unusable this cycle); errors are logged at Warn
// and never propagated.
//
// Postcondition: Returns true iff the gate function exists and returns true.
func (m *Manager) CallGate(archetype, gate, combatantID string, healthFraction float64, targetCount int) bool {
	m.mu.RLock()
	L, ok := m.states[archetype]
	m.mu.RUnlock()

	if !ok || L == nil {
		m.logger.Warn("scripting: no VM for archetype",
			zap.String("archetype", archetype),
			zap.String("gate", gate),
		)
		return false
	}

	fn := L.GetGlobal(gate)
	if fn == lua.LNil {
		m.logger.Warn("scripting: gate not defined",
			zap.String("archetype", archetype),
			zap.String("gate", gate),
		)
		return false
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(combatantID), lua.LNumber(healthFraction), lua.LNumber(targetCount)); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("archetype", archetype),
			zap.String("gate", gate),
			zap.Error(err),
		)
		return false
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret == lua.LTrue
}

// Close tears down all archetype VMs.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, L := range m.states {
		if cancel := m.cancels[key]; cancel != nil {
			cancel()
		}
		L.Close()
		delete(m.states, key)
		delete(m.cancels, key)
	}
}

// registerModules installs the sim.* table exposed to gate scripts.
// Currently only sim.log, which writes through the manager's logger.
func (m *Manager) registerModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "log", L.NewFunction(func(ls *lua.LState) int {
		msg := ls.CheckString(1)
		m.logger.Info("script", zap.String("msg", msg))
		return 0
	}))
	L.SetGlobal("sim", mod)
}
