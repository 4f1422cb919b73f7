package state

import (
	"fmt"
	"strings"

	"github.com/nerrad567/hearth-core/internal/hub"
	"github.com/nerrad567/hearth-core/internal/infrastructure/config"
	"github.com/nerrad567/hearth-core/internal/model"
)

// lightDomainPrefix tags entity ids belonging to the light domain.
const lightDomainPrefix = "light."

// rebuild derives a fresh area list from the staged registry buffers.
//
// Areas are recreated from the area registry; sensor readings, which are
// not registry data, are carried over from the previous instance of the
// same area so a resync never erases them. Lights are then re-derived
// from (device, entity, entity state) triples, and configured sensors
// from the dashboard table matched against the staged state snapshot.
//
// A light entity with no resolvable device or area is a structural
// registry inconsistency and aborts the whole rebuild; the caller keeps
// the previous model. Callers must hold the write lock.
func (m *Manager) rebuild() ([]*model.Area, error) {
	prev := make(map[string]*model.Area, len(m.areas))
	for _, a := range m.areas {
		prev[a.ID] = a
	}

	next := make([]*model.Area, 0, len(m.buf.areas))
	byID := make(map[string]*model.Area, len(m.buf.areas))
	for _, entry := range m.buf.areas {
		area := &model.Area{
			ID:      entry.AreaID,
			Name:    entry.Name,
			FloorID: entry.FloorID,
		}
		if old, ok := prev[entry.AreaID]; ok {
			// Registry fields win; readings survive the rebuild.
			area.Humidity = old.Humidity
			area.Temperature = old.Temperature
			area.CarbonDioxide = old.CarbonDioxide
		}
		next = append(next, area)
		byID[area.ID] = area
	}

	devices := make(map[string]hub.DeviceEntry, len(m.buf.devices))
	for _, d := range m.buf.devices {
		devices[d.ID] = d
	}

	for _, entity := range m.buf.entities {
		if !strings.HasPrefix(entity.EntityID, lightDomainPrefix) {
			continue
		}

		if entity.DeviceID == nil {
			return nil, fmt.Errorf("%w: entity %q has no device", ErrRegistryInconsistent, entity.EntityID)
		}
		device, ok := devices[*entity.DeviceID]
		if !ok {
			return nil, fmt.Errorf("%w: entity %q references unknown device %q",
				ErrRegistryInconsistent, entity.EntityID, *entity.DeviceID)
		}
		if device.AreaID == nil {
			return nil, fmt.Errorf("%w: device %q has no area", ErrRegistryInconsistent, device.ID)
		}
		area, ok := byID[*device.AreaID]
		if !ok {
			return nil, fmt.Errorf("%w: device %q references unknown area %q",
				ErrRegistryInconsistent, device.ID, *device.AreaID)
		}

		area.Lights = append(area.Lights, newLight(entity, device, area, m.buf.states[entity.EntityID]))
	}

	for _, area := range next {
		cfg, ok := m.areaConfig(area.ID)
		if !ok {
			continue
		}
		m.deriveSensors(area, cfg)
	}

	return next, nil
}

// newLight builds a Light from its registry triple and staged state.
// A missing state entry (zero EntityState) yields an unavailable light.
func newLight(entity hub.EntityEntry, device hub.DeviceEntry, area *model.Area, st hub.EntityState) *model.Light {
	name := device.Name
	if device.NameByUser != nil && *device.NameByUser != "" {
		name = *device.NameByUser
	}

	light := &model.Light{
		EntityID:   entity.EntityID,
		AreaID:     area.ID,
		AreaName:   area.Name,
		DeviceID:   device.ID,
		DeviceName: name,
	}
	applyLightState(light, st)
	return light
}

// applyLightState overwrites a light's dynamic fields from a state
// payload. Used identically during rebuild and live patch application.
func applyLightState(light *model.Light, st hub.EntityState) {
	raw := ""
	if st.State != nil {
		raw = *st.State
	}
	light.State = model.NormalizeLightState(raw)
	light.BrightnessPercentage = model.BrightnessToPercentage(st.Attributes["brightness"])
	light.RGBColor = model.RGBFromAttribute(st.Attributes["rgb_color"])
}

// deriveSensors re-derives an area's configured sensors from the staged
// state snapshot. A configured sensor with no staged state is logged and
// skipped; any reading carried over from the previous model stays.
func (m *Manager) deriveSensors(area *model.Area, cfg config.AreaConfig) {
	if cfg.HumidityEntity != "" {
		if st, ok := m.buf.states[cfg.HumidityEntity]; ok {
			area.Humidity = &model.HumiditySensor{
				EntityID:          cfg.HumidityEntity,
				AreaID:            area.ID,
				State:             model.CoerceReading(stateValue(st)),
				UnitOfMeasurement: unitOrDefault(st, "%"),
			}
		} else {
			m.logger.Debug("no state for configured humidity sensor",
				"area", area.ID, "entity_id", cfg.HumidityEntity)
		}
	}

	if cfg.CarbonDioxideEntity != "" {
		if st, ok := m.buf.states[cfg.CarbonDioxideEntity]; ok {
			area.CarbonDioxide = &model.CarbonDioxideSensor{
				EntityID:          cfg.CarbonDioxideEntity,
				AreaID:            area.ID,
				State:             model.CoerceReading(stateValue(st)),
				UnitOfMeasurement: unitOrDefault(st, "ppm"),
			}
		} else {
			m.logger.Debug("no state for configured carbon dioxide sensor",
				"area", area.ID, "entity_id", cfg.CarbonDioxideEntity)
		}
	}

	if cfg.TemperatureEntity != "" {
		if st, ok := m.buf.states[cfg.TemperatureEntity]; ok {
			area.Temperature = newTemperatureSensor(area.ID, cfg, st)
		} else {
			m.logger.Debug("no state for configured temperature sensor",
				"area", area.ID, "entity_id", cfg.TemperatureEntity)
		}
	}
}

// newTemperatureSensor builds a temperature sensor, converting the
// reading into the area's configured display unit when the hub reports a
// different recognised unit.
func newTemperatureSensor(areaID string, cfg config.AreaConfig, st hub.EntityState) *model.TemperatureSensor {
	target := cfg.TemperatureUnit
	reading := model.CoerceReading(stateValue(st))
	reading = model.ConvertReading(reading, resolveTemperatureUnit(st, target), target)

	return &model.TemperatureSensor{
		EntityID:          cfg.TemperatureEntity,
		AreaID:            areaID,
		State:             reading,
		UnitOfMeasurement: target,
	}
}

// stateValue extracts the raw state value from an entity state payload.
func stateValue(st hub.EntityState) any {
	if st.State == nil {
		return nil
	}
	return *st.State
}

// unitOrDefault returns the hub-reported unit of measurement, or fallback
// when the payload carries none.
func unitOrDefault(st hub.EntityState, fallback string) string {
	if u, ok := st.Attributes["unit_of_measurement"].(string); ok && u != "" {
		return u
	}
	return fallback
}

// resolveTemperatureUnit picks the source unit for a temperature reading:
// the hub-reported unit when it is a recognised temperature unit, else
// the area's configured target unit.
func resolveTemperatureUnit(st hub.EntityState, target string) string {
	if u, ok := st.Attributes["unit_of_measurement"].(string); ok && model.IsTemperatureUnit(u) {
		return u
	}
	return target
}
