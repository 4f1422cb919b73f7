package model

import (
	"math"
	"strconv"
)

// Temperature display units recognised on the wire.
const (
	UnitCelsius    = "°C"
	UnitFahrenheit = "°F"
)

// maxRawBrightness is the hub's brightness scale ceiling.
const maxRawBrightness = 255

// NormalizeLightState maps a raw hub state string to the tri-state light
// state. Anything other than "on" or "off" (including an absent state)
// normalises to unavailable.
func NormalizeLightState(raw string) LightState {
	switch raw {
	case "on":
		return LightOn
	case "off":
		return LightOff
	default:
		return LightUnavailable
	}
}

// BrightnessToPercentage converts a raw brightness attribute (0-255
// integer, float, or numeric string) to a rounded 0-100 percentage.
// Non-numeric or absent values yield nil.
func BrightnessToPercentage(raw any) *int {
	v, ok := coerceFloat(raw)
	if !ok {
		return nil
	}
	p := int(math.Round(v * 100 / maxRawBrightness))
	return &p
}

// BrightnessToRaw converts a 0-100 percentage to the hub's 0-255 scale.
func BrightnessToRaw(percentage int) int {
	return int(math.Round(float64(percentage) * maxRawBrightness / 100))
}

// RGBFromAttribute extracts an RGB colour from a raw attribute value.
// The attribute passes through only when it is an array; anything else
// yields nil. Array elements that are not numeric become 0.
func RGBFromAttribute(raw any) []int {
	elems, ok := raw.([]any)
	if !ok {
		return nil
	}
	rgb := make([]int, len(elems))
	for i, e := range elems {
		if v, ok := coerceFloat(e); ok {
			rgb[i] = int(v)
		}
	}
	return rgb
}

// CoerceReading converts a raw sensor state to a Reading. Numeric values
// pass through, numeric strings are parsed, and anything else (including
// non-numeric strings and nil) yields the unavailable sentinel.
func CoerceReading(raw any) Reading {
	v, ok := coerceFloat(raw)
	if !ok {
		return UnavailableReading()
	}
	return NewReading(v)
}

// coerceFloat converts the numeric shapes that appear in decoded JSON
// payloads (float64, the integer types, numeric strings) to a float64.
func coerceFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsTemperatureUnit reports whether unit is a recognised temperature unit.
func IsTemperatureUnit(unit string) bool {
	return unit == UnitCelsius || unit == UnitFahrenheit
}

// ConvertTemperature converts value from one display unit to the other,
// rounding to the nearest integer. Converting a value to its own unit is
// a no-op.
func ConvertTemperature(value float64, from, to string) float64 {
	if from == to {
		return value
	}
	switch to {
	case UnitFahrenheit:
		return math.Round(value*1.8 + 32)
	case UnitCelsius:
		return math.Round((value - 32) / 1.8)
	default:
		return value
	}
}

// ConvertReading converts a temperature reading between display units.
// The unavailable sentinel is never numerically converted.
func ConvertReading(r Reading, from, to string) Reading {
	v, ok := r.Value()
	if !ok {
		return r
	}
	return NewReading(ConvertTemperature(v, from, to))
}
