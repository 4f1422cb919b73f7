package model

import "strconv"

// Unavailable is the sentinel rendered for readings and states that the
// hub cannot currently report.
const Unavailable = "unavailable"

// LightState is the tri-state power state of a light.
type LightState string

// LightState constants.
const (
	LightOn          LightState = "on"
	LightOff         LightState = "off"
	LightUnavailable LightState = LightState(Unavailable)
)

// DangerLevel classifies a carbon dioxide reading.
type DangerLevel string

// DangerLevel constants.
const (
	DangerLevelUnknown DangerLevel = "unknown"
	DangerLevelSafe    DangerLevel = "safe"
	DangerLevelDanger  DangerLevel = "danger"
)

// Area is a named physical zone of the installation. It owns the lights
// located in it and at most one sensor of each kind. Areas are recreated
// wholesale on every full rebuild; sensor readings, which do not come
// from the registries, are carried over from the previous instance.
type Area struct {
	ID      string
	Name    string
	FloorID *string

	// Lights is ordered by arrival during rebuild.
	Lights []*Light

	Humidity      *HumiditySensor
	Temperature   *TemperatureSensor
	CarbonDioxide *CarbonDioxideSensor
}

// Light returns the light with the given entity ID, or nil.
func (a *Area) Light(entityID string) *Light {
	for _, l := range a.Lights {
		if l.EntityID == entityID {
			return l
		}
	}
	return nil
}

// Light is a single controllable light entity. An entity ID maps to
// exactly one Light inside exactly one Area at any time.
type Light struct {
	EntityID   string
	AreaID     string
	AreaName   string
	DeviceID   string
	DeviceName string

	State LightState

	// BrightnessPercentage is 0-100, or nil when the hub reports no
	// usable brightness attribute.
	BrightnessPercentage *int

	// RGBColor is the raw rgb_color attribute (0-255 per channel), or
	// nil when the hub reports none.
	RGBColor []int
}

// Reading is a numeric sensor value that may be unavailable.
type Reading struct {
	value     float64
	available bool
}

// NewReading returns an available reading holding value.
func NewReading(value float64) Reading {
	return Reading{value: value, available: true}
}

// UnavailableReading returns the unavailable sentinel reading.
func UnavailableReading() Reading {
	return Reading{}
}

// Value returns the numeric value and whether it is available.
func (r Reading) Value() (float64, bool) {
	return r.value, r.available
}

// Available reports whether the reading holds a numeric value.
func (r Reading) Available() bool {
	return r.available
}

// String renders the numeric value, or the unavailable sentinel.
func (r Reading) String() string {
	if !r.available {
		return Unavailable
	}
	return strconv.FormatFloat(r.value, 'f', -1, 64)
}

// HumiditySensor holds the latest relative humidity reading for an area.
type HumiditySensor struct {
	EntityID          string
	AreaID            string
	State             Reading
	UnitOfMeasurement string
}

// TemperatureSensor holds the latest temperature reading for an area.
// UnitOfMeasurement is the area's configured display unit; readings that
// arrive in a different unit are converted before being stored.
type TemperatureSensor struct {
	EntityID          string
	AreaID            string
	State             Reading
	UnitOfMeasurement string
}

// CarbonDioxideSensor holds the latest CO2 concentration for an area.
type CarbonDioxideSensor struct {
	EntityID          string
	AreaID            string
	State             Reading
	UnitOfMeasurement string
}
