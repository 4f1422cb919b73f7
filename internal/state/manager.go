package state

import (
	"sync"

	"github.com/nerrad567/hearth-core/internal/hub"
	"github.com/nerrad567/hearth-core/internal/infrastructure/config"
	"github.com/nerrad567/hearth-core/internal/model"
)

// Logger defines the logging interface used by the Manager.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Manager reconciles the four independently-arriving registry results
// plus the live change stream into one consistent domain model.
//
// Registry results are staged in per-kind buffers; a full rebuild runs
// only once all four are present, and clears them, so a rebuild fires at
// most once per completed quartet. Change events merge into the staged
// state snapshot while one is held, and apply directly to the live model
// otherwise.
//
// The Manager is the model's only writer. Events arrive sequentially on
// the hub client's dispatch path; the mutex exists for the read accessors
// used by other goroutines and guarantees field-level consistency only.
type Manager struct {
	areasCfg []config.AreaConfig
	logger   Logger

	mu     sync.RWMutex
	areas  []*model.Area
	synced bool
	buf    registryBuffers
}

// registryBuffers stages the latest received, not yet consumed result for
// each registry kind. The have* flags track presence explicitly so an
// empty registry list still counts as received.
type registryBuffers struct {
	areas    []hub.AreaEntry
	devices  []hub.DeviceEntry
	entities []hub.EntityEntry
	states   map[string]hub.EntityState

	haveAreas    bool
	haveDevices  bool
	haveEntities bool
	haveStates   bool
}

func (b *registryBuffers) complete() bool {
	return b.haveAreas && b.haveDevices && b.haveEntities && b.haveStates
}

func (b *registryBuffers) clear() {
	*b = registryBuffers{}
}

// NewManager creates a Manager using the static per-area dashboard table.
func NewManager(areas []config.AreaConfig) *Manager {
	return &Manager{
		areasCfg: areas,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the manager.
func (m *Manager) SetLogger(logger Logger) {
	m.logger = logger
}

// HandleAreas stages an area registry result and attempts a rebuild.
func (m *Manager) HandleAreas(areas []hub.AreaEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf.areas = areas
	m.buf.haveAreas = true
	return m.trySynchronize()
}

// HandleDevices stages a device registry result and attempts a rebuild.
func (m *Manager) HandleDevices(devices []hub.DeviceEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf.devices = devices
	m.buf.haveDevices = true
	return m.trySynchronize()
}

// HandleEntities stages an entity registry result and attempts a rebuild.
func (m *Manager) HandleEntities(entities []hub.EntityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf.entities = entities
	m.buf.haveEntities = true
	return m.trySynchronize()
}

// HandleEntityStates stages a full entity state snapshot and attempts a
// rebuild.
func (m *Manager) HandleEntityStates(states map[string]hub.EntityState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if states == nil {
		states = make(map[string]hub.EntityState)
	}
	m.buf.states = states
	m.buf.haveStates = true
	return m.trySynchronize()
}

// trySynchronize rebuilds the model if all four registry buffers are
// present. The rebuild is all-or-nothing: on failure the previous model
// stays in place and the buffers are kept, so the next registry event
// retries the cycle. Callers must hold the write lock.
func (m *Manager) trySynchronize() error {
	if !m.buf.complete() {
		return nil
	}

	areas, err := m.rebuild()
	if err != nil {
		return err
	}

	m.areas = areas
	m.synced = true
	m.buf.clear()

	m.logger.Info("model synchronised", "areas", len(areas))
	return nil
}

// Synced reports whether at least one full rebuild has completed.
func (m *Manager) Synced() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.synced
}

// Stats holds model counters for monitoring.
type Stats struct {
	Areas   int
	Lights  int
	Sensors int
	Synced  bool
}

// GetStats returns current model statistics.
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{
		Areas:  len(m.areas),
		Synced: m.synced,
	}
	for _, area := range m.areas {
		stats.Lights += len(area.Lights)
		if area.Humidity != nil {
			stats.Sensors++
		}
		if area.Temperature != nil {
			stats.Sensors++
		}
		if area.CarbonDioxide != nil {
			stats.Sensors++
		}
	}
	return stats
}

// area returns the live area with the given id, or nil. Callers must
// hold at least the read lock.
func (m *Manager) area(areaID string) *model.Area {
	for _, a := range m.areas {
		if a.ID == areaID {
			return a
		}
	}
	return nil
}

// areaConfig returns the dashboard configuration row for an area id.
func (m *Manager) areaConfig(areaID string) (config.AreaConfig, bool) {
	for _, cfg := range m.areasCfg {
		if cfg.ID == areaID {
			return cfg, true
		}
	}
	return config.AreaConfig{}, false
}
