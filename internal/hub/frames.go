package hub

import "encoding/json"

// Outbound request types.
const (
	TypeAuth               = "auth"
	TypeSubscribeEntities  = "subscribe_entities"
	TypeCallService        = "call_service"
	TypeAreaRegistryList   = "config/area_registry/list"
	TypeDeviceRegistryList = "config/device_registry/list"
	TypeEntityRegistryList = "config/entity_registry/list"
)

// Inbound frame type tags.
const (
	frameAuthRequired = "auth_required"
	frameAuthOK       = "auth_ok"
	frameAuthInvalid  = "auth_invalid"
	frameResult       = "result"
	frameEvent        = "event"
)

// Light services issued through call_service.
const (
	ServiceToggle  = "toggle"
	ServiceTurnOn  = "turn_on"
	ServiceTurnOff = "turn_off"
)

// lightDomain is the service-call domain for light commands.
const lightDomain = "light"

// frame is the envelope every hub message arrives in. The payload fields
// are raw; they are decoded per type tag, and frames with an unknown tag
// or shape are dropped rather than field-probed.
type frame struct {
	Type    string          `json:"type"`
	ID      uint64          `json:"id,omitempty"`
	Success *bool           `json:"success,omitempty"`
	Error   *ResultError    `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Event   json.RawMessage `json:"event,omitempty"`
}

// ResultError is the error body a result frame may carry.
type ResultError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AreaEntry is one row of the hub's area registry.
type AreaEntry struct {
	AreaID  string  `json:"area_id"`
	Name    string  `json:"name"`
	FloorID *string `json:"floor_id"`
}

// DeviceEntry is one row of the hub's device registry.
type DeviceEntry struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	NameByUser *string `json:"name_by_user"`
	AreaID     *string `json:"area_id"`
}

// EntityEntry is one row of the hub's entity registry. Entity IDs are
// domain-prefixed ("light.desk").
type EntityEntry struct {
	EntityID string  `json:"entity_id"`
	DeviceID *string `json:"device_id"`
	AreaID   *string `json:"area_id"`
}

// EntityState is the compacted per-entity state payload used by both the
// additive snapshot ("a") and sparse change ("c") event shapes. In a
// change event both fields are partial: an absent State or attribute key
// means "unchanged" for buffer merging purposes.
type EntityState struct {
	State      *string        `json:"s,omitempty"`
	Attributes map[string]any `json:"a,omitempty"`
}

// entityEvent is the payload of an "event" frame from the compacted
// entity state subscription.
type entityEvent struct {
	Additions map[string]EntityState `json:"a,omitempty"`
	Changes   map[string]EntityState `json:"c,omitempty"`
}

// EventHandler receives the typed events the client extracts from the
// hub stream. One method per event kind; the client invokes them
// sequentially from its single dispatch path, so implementations need no
// internal ordering logic. A returned error is logged by the client and
// does not stop dispatch.
type EventHandler interface {
	HandleAreas(areas []AreaEntry) error
	HandleDevices(devices []DeviceEntry) error
	HandleEntities(entities []EntityEntry) error
	HandleEntityStates(states map[string]EntityState) error
	HandleEntityStateChange(changes map[string]EntityState) error
}
