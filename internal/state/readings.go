package state

import (
	"fmt"

	"github.com/nerrad567/hearth-core/internal/model"
)

// carbonDioxideDangerThreshold is the concentration, in ppm, above which
// a CO2 reading classifies as dangerous.
const carbonDioxideDangerThreshold = 1000.0

// Lights returns the lights currently in an area, in arrival order.
// Returns ErrAreaUnknown for an area not present in the live model.
func (m *Manager) Lights(areaID string) ([]*model.Light, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	area := m.area(areaID)
	if area == nil {
		return nil, fmt.Errorf("%w: %s", ErrAreaUnknown, areaID)
	}

	lights := make([]*model.Light, len(area.Lights))
	copy(lights, area.Lights)
	return lights, nil
}

// AverageBrightness returns the rounded mean brightness percentage of an
// area's lights. Lights without a brightness count as 0; an area with no
// lights averages to 0.
func (m *Manager) AverageBrightness(areaID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	area := m.area(areaID)
	if area == nil {
		return 0, fmt.Errorf("%w: %s", ErrAreaUnknown, areaID)
	}
	if len(area.Lights) == 0 {
		return 0, nil
	}

	sum := 0
	for _, light := range area.Lights {
		if light.BrightnessPercentage != nil {
			sum += *light.BrightnessPercentage
		}
	}
	// Round half up; percentages are non-negative.
	return (sum + len(area.Lights)/2) / len(area.Lights), nil
}

// HumidityReading returns the area's humidity as a "value unit" string,
// or the unavailable sentinel. Returns ErrSensorNotConfigured when the
// dashboard table names no humidity sensor for the area.
func (m *Manager) HumidityReading(areaID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	area := m.area(areaID)
	if area == nil {
		return "", fmt.Errorf("%w: %s", ErrAreaUnknown, areaID)
	}
	cfg, ok := m.areaConfig(areaID)
	if !ok || cfg.HumidityEntity == "" {
		return "", fmt.Errorf("%w: humidity in %s", ErrSensorNotConfigured, areaID)
	}
	if area.Humidity == nil {
		return model.Unavailable, nil
	}
	return formatReading(area.Humidity.State, area.Humidity.UnitOfMeasurement), nil
}

// TemperatureReading returns the area's temperature in its configured
// display unit as a "value unit" string, or the unavailable sentinel.
// Returns ErrSensorNotConfigured when the dashboard table names no
// temperature sensor for the area.
func (m *Manager) TemperatureReading(areaID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	area := m.area(areaID)
	if area == nil {
		return "", fmt.Errorf("%w: %s", ErrAreaUnknown, areaID)
	}
	cfg, ok := m.areaConfig(areaID)
	if !ok || cfg.TemperatureEntity == "" {
		return "", fmt.Errorf("%w: temperature in %s", ErrSensorNotConfigured, areaID)
	}
	if area.Temperature == nil {
		return model.Unavailable, nil
	}
	return formatReading(area.Temperature.State, area.Temperature.UnitOfMeasurement), nil
}

// CarbonDioxideReading returns the area's CO2 concentration as a
// "value unit" string, or the unavailable sentinel. Returns
// ErrSensorNotConfigured when the dashboard table names no CO2 sensor
// for the area.
func (m *Manager) CarbonDioxideReading(areaID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	area := m.area(areaID)
	if area == nil {
		return "", fmt.Errorf("%w: %s", ErrAreaUnknown, areaID)
	}
	cfg, ok := m.areaConfig(areaID)
	if !ok || cfg.CarbonDioxideEntity == "" {
		return "", fmt.Errorf("%w: carbon dioxide in %s", ErrSensorNotConfigured, areaID)
	}
	if area.CarbonDioxide == nil {
		return model.Unavailable, nil
	}
	return formatReading(area.CarbonDioxide.State, area.CarbonDioxide.UnitOfMeasurement), nil
}

// CarbonDioxideDangerLevel classifies the area's current CO2 reading.
// An unavailable reading or an unconfigured sensor classifies as unknown;
// readings above 1000 ppm classify as danger, everything else as safe.
func (m *Manager) CarbonDioxideDangerLevel(areaID string) (model.DangerLevel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	area := m.area(areaID)
	if area == nil {
		return model.DangerLevelUnknown, fmt.Errorf("%w: %s", ErrAreaUnknown, areaID)
	}
	if area.CarbonDioxide == nil {
		return model.DangerLevelUnknown, nil
	}
	value, ok := area.CarbonDioxide.State.Value()
	if !ok {
		return model.DangerLevelUnknown, nil
	}
	if value > carbonDioxideDangerThreshold {
		return model.DangerLevelDanger, nil
	}
	return model.DangerLevelSafe, nil
}

// formatReading renders a reading as "value unit", or the unavailable
// sentinel on its own.
func formatReading(r model.Reading, unit string) string {
	if !r.Available() {
		return model.Unavailable
	}
	return fmt.Sprintf("%s %s", r.String(), unit)
}
