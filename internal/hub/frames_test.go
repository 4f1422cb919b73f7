package hub

import (
	"encoding/json"
	"testing"
)

func TestFrame_DecodeResult(t *testing.T) {
	raw := `{
		"type": "result",
		"id": 3,
		"success": true,
		"result": [
			{"area_id": "office", "name": "Office", "floor_id": "ground"},
			{"area_id": "hall", "name": "Hall", "floor_id": null}
		]
	}`

	var f frame
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if f.Type != frameResult || f.ID != 3 {
		t.Errorf("frame = %+v, want result frame with id 3", f)
	}
	if f.Success == nil || !*f.Success {
		t.Error("Success should decode as true")
	}

	var areas []AreaEntry
	if err := json.Unmarshal(f.Result, &areas); err != nil {
		t.Fatalf("unmarshal result payload: %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("len(areas) = %d, want 2", len(areas))
	}
	if areas[0].FloorID == nil || *areas[0].FloorID != "ground" {
		t.Errorf("areas[0].FloorID = %v, want ground", areas[0].FloorID)
	}
	if areas[1].FloorID != nil {
		t.Errorf("areas[1].FloorID = %v, want nil for JSON null", *areas[1].FloorID)
	}
}

func TestFrame_DecodeErrorResult(t *testing.T) {
	raw := `{
		"type": "result",
		"id": 7,
		"success": false,
		"error": {"code": "unknown_command", "message": "no such command"}
	}`

	var f frame
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if f.Error == nil {
		t.Fatal("Error should be populated")
	}
	if f.Error.Code != "unknown_command" || f.Error.Message != "no such command" {
		t.Errorf("Error = %+v", f.Error)
	}
}

func TestEntityEvent_DecodeAdditive(t *testing.T) {
	raw := `{"a": {"light.desk": {"s": "on", "a": {"brightness": 128, "rgb_color": [255, 0, 0]}}}}`

	var ev entityEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if ev.Changes != nil {
		t.Error("additive payload must not populate Changes")
	}

	st, ok := ev.Additions["light.desk"]
	if !ok {
		t.Fatal("light.desk missing from additions")
	}
	if st.State == nil || *st.State != "on" {
		t.Errorf("State = %v, want on", st.State)
	}
	if st.Attributes["brightness"] != float64(128) {
		t.Errorf("brightness = %v, want 128", st.Attributes["brightness"])
	}
}

func TestEntityEvent_DecodeSparseChange(t *testing.T) {
	// A change may carry only attributes, leaving the state pointer nil.
	raw := `{"c": {"light.desk": {"a": {"brightness": 64}}}}`

	var ev entityEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if ev.Additions != nil {
		t.Error("change payload must not populate Additions")
	}

	st := ev.Changes["light.desk"]
	if st.State != nil {
		t.Errorf("State = %q, want nil for an attribute-only change", *st.State)
	}
	if st.Attributes["brightness"] != float64(64) {
		t.Errorf("brightness = %v, want 64", st.Attributes["brightness"])
	}
}

func TestEntityEntry_DecodeNulls(t *testing.T) {
	raw := `[
		{"entity_id": "light.desk", "device_id": "dev-1", "area_id": null},
		{"entity_id": "sensor.hall", "device_id": null, "area_id": "hall"}
	]`

	var entities []EntityEntry
	if err := json.Unmarshal([]byte(raw), &entities); err != nil {
		t.Fatalf("unmarshal entities: %v", err)
	}
	if entities[0].DeviceID == nil || *entities[0].DeviceID != "dev-1" {
		t.Errorf("entities[0].DeviceID = %v, want dev-1", entities[0].DeviceID)
	}
	if entities[0].AreaID != nil {
		t.Error("entities[0].AreaID should be nil")
	}
	if entities[1].DeviceID != nil {
		t.Error("entities[1].DeviceID should be nil")
	}
}
