package model

import "testing"

func TestArea_Light(t *testing.T) {
	area := &Area{
		ID:   "office",
		Name: "Office",
		Lights: []*Light{
			{EntityID: "light.desk"},
			{EntityID: "light.ceiling"},
		},
	}

	if l := area.Light("light.ceiling"); l == nil || l.EntityID != "light.ceiling" {
		t.Errorf("Light(light.ceiling) = %v, want the ceiling light", l)
	}
	if l := area.Light("light.missing"); l != nil {
		t.Errorf("Light(light.missing) = %v, want nil", l)
	}
}

func TestReading_String(t *testing.T) {
	if got := NewReading(21.5).String(); got != "21.5" {
		t.Errorf("NewReading(21.5).String() = %q, want %q", got, "21.5")
	}
	if got := NewReading(40).String(); got != "40" {
		t.Errorf("NewReading(40).String() = %q, want %q", got, "40")
	}
	if got := UnavailableReading().String(); got != Unavailable {
		t.Errorf("UnavailableReading().String() = %q, want %q", got, Unavailable)
	}
}

func TestReading_Value(t *testing.T) {
	v, ok := NewReading(600).Value()
	if !ok || v != 600 {
		t.Errorf("NewReading(600).Value() = %v, %v; want 600, true", v, ok)
	}

	if _, ok := UnavailableReading().Value(); ok {
		t.Error("UnavailableReading().Value() reported available")
	}
}
