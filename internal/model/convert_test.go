package model

import (
	"math"
	"testing"
)

func TestNormalizeLightState(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LightState
	}{
		{name: "on passes through", input: "on", expected: LightOn},
		{name: "off passes through", input: "off", expected: LightOff},
		{name: "unavailable normalises", input: "unavailable", expected: LightUnavailable},
		{name: "unknown normalises", input: "unknown", expected: LightUnavailable},
		{name: "empty normalises", input: "", expected: LightUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLightState(tt.input); got != tt.expected {
				t.Errorf("NormalizeLightState(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBrightnessToPercentage(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected *int
	}{
		{name: "zero", input: float64(0), expected: intPtr(0)},
		{name: "full", input: float64(255), expected: intPtr(100)},
		{name: "half", input: float64(128), expected: intPtr(50)},
		{name: "integer", input: 64, expected: intPtr(25)},
		{name: "numeric string", input: "255", expected: intPtr(100)},
		{name: "non-numeric string", input: "bright", expected: nil},
		{name: "absent", input: nil, expected: nil},
		{name: "wrong type", input: []any{1, 2}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BrightnessToPercentage(tt.input)
			switch {
			case got == nil && tt.expected == nil:
			case got == nil || tt.expected == nil:
				t.Errorf("BrightnessToPercentage(%v) = %v, want %v", tt.input, got, tt.expected)
			case *got != *tt.expected:
				t.Errorf("BrightnessToPercentage(%v) = %d, want %d", tt.input, *got, *tt.expected)
			}
		})
	}
}

// TestBrightness_RoundTrip verifies percentage -> raw -> percentage is
// stable within the +/-1 rounding error inherent in the 255/100 scales.
func TestBrightness_RoundTrip(t *testing.T) {
	for p := 0; p <= 100; p++ {
		raw := BrightnessToRaw(p)
		back := BrightnessToPercentage(float64(raw))
		if back == nil {
			t.Fatalf("round trip of %d lost the value", p)
		}
		if diff := *back - p; diff < -1 || diff > 1 {
			t.Errorf("round trip of %d%% came back as %d%% (raw %d)", p, *back, raw)
		}
	}
}

func TestRGBFromAttribute(t *testing.T) {
	t.Run("array passes through", func(t *testing.T) {
		got := RGBFromAttribute([]any{float64(255), float64(128), float64(0)})
		want := []int{255, 128, 0}
		if len(got) != len(want) {
			t.Fatalf("RGBFromAttribute returned %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("RGBFromAttribute[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("non-array yields nil", func(t *testing.T) {
		if got := RGBFromAttribute("red"); got != nil {
			t.Errorf("RGBFromAttribute(string) = %v, want nil", got)
		}
		if got := RGBFromAttribute(nil); got != nil {
			t.Errorf("RGBFromAttribute(nil) = %v, want nil", got)
		}
		if got := RGBFromAttribute(float64(255)); got != nil {
			t.Errorf("RGBFromAttribute(number) = %v, want nil", got)
		}
	})
}

func TestCoerceReading(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		value     float64
		available bool
	}{
		{name: "float passes through", input: 21.5, value: 21.5, available: true},
		{name: "integer passes through", input: 40, value: 40, available: true},
		{name: "numeric string parses", input: "18.2", value: 18.2, available: true},
		{name: "non-numeric string unavailable", input: "unavailable", available: false},
		{name: "nil unavailable", input: nil, available: false},
		{name: "bool unavailable", input: true, available: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CoerceReading(tt.input)
			v, ok := r.Value()
			if ok != tt.available {
				t.Fatalf("CoerceReading(%v) available = %v, want %v", tt.input, ok, tt.available)
			}
			if ok && v != tt.value {
				t.Errorf("CoerceReading(%v) = %v, want %v", tt.input, v, tt.value)
			}
		})
	}
}

func TestConvertTemperature_SameUnitIsNoOp(t *testing.T) {
	// No rounding either: 21.5 stays 21.5.
	if got := ConvertTemperature(21.5, UnitCelsius, UnitCelsius); got != 21.5 {
		t.Errorf("ConvertTemperature(21.5, C, C) = %v, want 21.5", got)
	}
	if got := ConvertTemperature(70.4, UnitFahrenheit, UnitFahrenheit); got != 70.4 {
		t.Errorf("ConvertTemperature(70.4, F, F) = %v, want 70.4", got)
	}
}

func TestConvertTemperature_CelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		celsius  float64
		expected float64
	}{
		{celsius: 0, expected: 32},
		{celsius: 100, expected: 212},
		{celsius: 21, expected: 70}, // 69.8 rounds up
		{celsius: -40, expected: -40},
	}

	for _, tt := range tests {
		if got := ConvertTemperature(tt.celsius, UnitCelsius, UnitFahrenheit); got != tt.expected {
			t.Errorf("ConvertTemperature(%v, C, F) = %v, want %v", tt.celsius, got, tt.expected)
		}
	}
}

func TestConvertTemperature_FahrenheitToCelsius(t *testing.T) {
	if got := ConvertTemperature(32, UnitFahrenheit, UnitCelsius); got != 0 {
		t.Errorf("ConvertTemperature(32, F, C) = %v, want 0", got)
	}
	if got := ConvertTemperature(212, UnitFahrenheit, UnitCelsius); got != 100 {
		t.Errorf("ConvertTemperature(212, F, C) = %v, want 100", got)
	}
}

// TestConvertTemperature_RoundTrip verifies C -> F -> C returns the
// original value within the tolerance introduced by integer rounding.
func TestConvertTemperature_RoundTrip(t *testing.T) {
	for c := -40.0; c <= 50.0; c++ {
		f := ConvertTemperature(c, UnitCelsius, UnitFahrenheit)
		back := ConvertTemperature(f, UnitFahrenheit, UnitCelsius)
		if math.Abs(back-c) > 1 {
			t.Errorf("round trip of %v°C came back as %v°C", c, back)
		}
	}
}

func TestConvertReading_UnavailableIsNeverConverted(t *testing.T) {
	r := ConvertReading(UnavailableReading(), UnitCelsius, UnitFahrenheit)
	if r.Available() {
		t.Error("converting an unavailable reading must preserve the sentinel")
	}
}

func TestConvertReading_Converts(t *testing.T) {
	r := ConvertReading(NewReading(20), UnitCelsius, UnitFahrenheit)
	v, ok := r.Value()
	if !ok {
		t.Fatal("converted reading should be available")
	}
	if v != 68 {
		t.Errorf("ConvertReading(20, C, F) = %v, want 68", v)
	}
}

func TestIsTemperatureUnit(t *testing.T) {
	if !IsTemperatureUnit(UnitCelsius) || !IsTemperatureUnit(UnitFahrenheit) {
		t.Error("recognised units reported as unrecognised")
	}
	if IsTemperatureUnit("%") || IsTemperatureUnit("ppm") || IsTemperatureUnit("") {
		t.Error("non-temperature unit reported as recognised")
	}
}

func intPtr(v int) *int { return &v }
