package state

import (
	"strings"

	"github.com/nerrad567/hearth-core/internal/hub"
	"github.com/nerrad567/hearth-core/internal/infrastructure/config"
	"github.com/nerrad567/hearth-core/internal/model"
)

// HandleEntityStateChange applies a sparse state patch.
//
// Two regimes:
//   - A staged state snapshot is currently held (a sync cycle is in
//     flight): the patch merges into the snapshot, so it is reflected in
//     the upcoming rebuild.
//   - No snapshot is held (steady state): the patch applies directly to
//     the live model. Before the first rebuild only light entities are
//     handled on this path; sensor patches arriving that early are
//     dropped and picked up by the next refresh.
func (m *Manager) HandleEntityStateChange(changes map[string]hub.EntityState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.buf.haveStates {
		for entityID, patch := range changes {
			mergeEntityState(m.buf.states, entityID, patch)
		}
		return nil
	}

	for entityID, patch := range changes {
		m.applyLive(entityID, patch)
	}
	return nil
}

// mergeEntityState merges a sparse patch into the staged snapshot:
// field-wise shallow merge, patch fields win, absent fields keep their
// buffered value.
func mergeEntityState(states map[string]hub.EntityState, entityID string, patch hub.EntityState) {
	current := states[entityID]
	if patch.State != nil {
		current.State = patch.State
	}
	if len(patch.Attributes) > 0 {
		if current.Attributes == nil {
			current.Attributes = make(map[string]any, len(patch.Attributes))
		}
		for k, v := range patch.Attributes {
			current.Attributes[k] = v
		}
	}
	states[entityID] = current
}

// applyLive applies one entity's patch to the live model. Lights are
// matched by entity id against the model; sensors by entity id against
// the per-area dashboard configuration (there is no reverse index). A
// patch that matches no configured sensor is logged and skipped.
func (m *Manager) applyLive(entityID string, patch hub.EntityState) {
	if strings.HasPrefix(entityID, lightDomainPrefix) {
		for _, area := range m.areas {
			if light := area.Light(entityID); light != nil {
				applyLightState(light, patch)
				return
			}
		}
		m.logger.Debug("state change for unknown light", "entity_id", entityID)
		return
	}

	if !m.synced {
		// No deferred buffer exists for sensors; the next full sync
		// delivers the reading anyway.
		m.logger.Debug("dropping sensor change before first sync", "entity_id", entityID)
		return
	}

	for _, cfg := range m.areasCfg {
		area := m.area(cfg.ID)
		if area == nil {
			continue
		}
		switch entityID {
		case cfg.HumidityEntity:
			m.patchHumidity(area, cfg, patch)
			return
		case cfg.TemperatureEntity:
			area.Temperature = newTemperatureSensor(area.ID, cfg, patch)
			return
		case cfg.CarbonDioxideEntity:
			m.patchCarbonDioxide(area, cfg, patch)
			return
		}
	}

	m.logger.Warn("no sensor configured for state change", "entity_id", entityID)
}

func (m *Manager) patchHumidity(area *model.Area, cfg config.AreaConfig, patch hub.EntityState) {
	unit := "%"
	if area.Humidity != nil {
		unit = area.Humidity.UnitOfMeasurement
	}
	area.Humidity = &model.HumiditySensor{
		EntityID:          cfg.HumidityEntity,
		AreaID:            area.ID,
		State:             model.CoerceReading(stateValue(patch)),
		UnitOfMeasurement: unitOrDefault(patch, unit),
	}
}

func (m *Manager) patchCarbonDioxide(area *model.Area, cfg config.AreaConfig, patch hub.EntityState) {
	unit := "ppm"
	if area.CarbonDioxide != nil {
		unit = area.CarbonDioxide.UnitOfMeasurement
	}
	area.CarbonDioxide = &model.CarbonDioxideSensor{
		EntityID:          cfg.CarbonDioxideEntity,
		AreaID:            area.ID,
		State:             model.CoerceReading(stateValue(patch)),
		UnitOfMeasurement: unitOrDefault(patch, unit),
	}
}
