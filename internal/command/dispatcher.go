package command

import (
	"fmt"

	"github.com/nerrad567/hearth-core/internal/model"
)

// LightService issues light commands to the hub. Implemented by
// hub.Client; calls are fire-and-forget, so a nil error only means the
// command was written, not that the light changed state.
type LightService interface {
	ToggleLight(entityID string) error
	TurnOnLight(entityID string, brightness *int) error
	TurnOffLight(entityID string) error
}

// Model provides the live light state the dispatcher consults to avoid
// redundant commands. Implemented by state.Manager.
type Model interface {
	Lights(areaID string) ([]*model.Light, error)
}

// Logger defines the logging interface used by the Dispatcher.
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

// Dispatcher translates area- and light-scoped intents into protocol
// commands. Because commands are fire-and-forget, the model update that
// confirms an effect arrives asynchronously and unordered relative to
// the call returning.
type Dispatcher struct {
	service LightService
	model   Model
	logger  Logger
}

// NewDispatcher creates a Dispatcher over the given service and model.
func NewDispatcher(service LightService, model Model) *Dispatcher {
	return &Dispatcher{
		service: service,
		model:   model,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the dispatcher.
func (d *Dispatcher) SetLogger(logger Logger) {
	d.logger = logger
}

// ToggleLight toggles a single light unconditionally.
func (d *Dispatcher) ToggleLight(entityID string) error {
	return d.service.ToggleLight(entityID)
}

// TurnOnLight turns a single light on unconditionally.
func (d *Dispatcher) TurnOnLight(entityID string) error {
	return d.service.TurnOnLight(entityID, nil)
}

// TurnOffLight turns a single light off unconditionally.
func (d *Dispatcher) TurnOffLight(entityID string) error {
	return d.service.TurnOffLight(entityID)
}

// TurnOnArea turns on every light in the area whose cached state is not
// already "on". Unavailable lights fail the strict comparison and are
// attempted too.
func (d *Dispatcher) TurnOnArea(areaID string) error {
	lights, err := d.model.Lights(areaID)
	if err != nil {
		return err
	}

	for _, light := range lights {
		if light.State == model.LightOn {
			d.logger.Debug("light already on, skipping", "entity_id", light.EntityID)
			continue
		}
		if err := d.service.TurnOnLight(light.EntityID, nil); err != nil {
			return fmt.Errorf("turning on %s: %w", light.EntityID, err)
		}
	}
	return nil
}

// TurnOffArea turns off every light in the area whose cached state is
// not already "off".
func (d *Dispatcher) TurnOffArea(areaID string) error {
	lights, err := d.model.Lights(areaID)
	if err != nil {
		return err
	}

	for _, light := range lights {
		if light.State == model.LightOff {
			d.logger.Debug("light already off, skipping", "entity_id", light.EntityID)
			continue
		}
		if err := d.service.TurnOffLight(light.EntityID); err != nil {
			return fmt.Errorf("turning off %s: %w", light.EntityID, err)
		}
	}
	return nil
}

// DimLight sets a single light's brightness. The percentage is converted
// to the hub's 0-255 scale; a raw value of 0 issues a turn_off instead
// of a turn_on with zero brightness.
func (d *Dispatcher) DimLight(entityID string, percentage int) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidPercentage, percentage)
	}

	raw := model.BrightnessToRaw(percentage)
	if raw == 0 {
		return d.service.TurnOffLight(entityID)
	}
	return d.service.TurnOnLight(entityID, &raw)
}

// DimArea applies DimLight to every light in the area, with no on/off
// pre-check.
func (d *Dispatcher) DimArea(areaID string, percentage int) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidPercentage, percentage)
	}

	lights, err := d.model.Lights(areaID)
	if err != nil {
		return err
	}

	for _, light := range lights {
		if err := d.DimLight(light.EntityID, percentage); err != nil {
			return fmt.Errorf("dimming %s: %w", light.EntityID, err)
		}
	}
	return nil
}
