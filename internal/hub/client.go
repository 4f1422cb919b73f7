package hub

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/hearth-core/internal/infrastructure/config"
)

// maxCorrelationID is the wrap point for the request id counter. Ids wrap
// back to 1 long before the uint64 range runs out so they stay inside the
// integer range every JSON consumer can represent exactly.
const maxCorrelationID = 1<<53 - 1

// Logger defines the logging interface used by the Client.
// This allows different logging implementations to be used.
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

// correlation records the most recently issued request id for each
// registry request kind, so result frames can be routed to the right
// typed event. Results whose id matches none of these slots are stale
// (superseded by a refresh) and are silently dropped.
type correlation struct {
	areas        uint64
	devices      uint64
	entities     uint64
	entityStates uint64
}

// Client owns one WebSocket connection to the hub. It runs the
// authentication handshake, issues correlated registry requests,
// subscribes to the compacted entity state stream, re-issues the registry
// requests on a fixed interval to self-heal from missed events, and
// delivers typed events to its EventHandler.
//
// The client has no business logic: its side effects are strictly network
// I/O and handler invocation. Frames are dispatched sequentially from a
// single read loop.
//
// Authentication failure is terminal for the connection; the transport is
// closed and a fresh Client is needed to retry.
type Client struct {
	cfg     config.HubConfig
	refresh time.Duration
	handler EventHandler
	logger  Logger

	// mu guards conn, done, refreshArmed, nextID and pending.
	mu           sync.Mutex
	conn         *websocket.Conn
	done         chan struct{}
	refreshArmed bool
	nextID       uint64
	pending      correlation

	// writeMu serialises writes: commands and the refresh ticker may
	// write concurrently with the read loop's auth replies.
	writeMu sync.Mutex
}

// NewClient creates a hub client. The handler receives every typed event;
// refreshInterval controls the periodic registry re-request.
func NewClient(cfg config.HubConfig, refreshInterval time.Duration, handler EventHandler) *Client {
	return &Client{
		cfg:     cfg,
		refresh: refreshInterval,
		handler: handler,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// Connect opens the WebSocket transport and starts the read loop. The
// authentication handshake then runs asynchronously: the hub sends
// auth_required, the client answers with its access token, and on auth_ok
// the four registry/subscribe requests are issued and the refresh timer
// armed.
//
// Returns ErrAlreadyConnected if the client already owns a live
// connection.
func (c *Client) Connect() error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	endpoint := c.endpoint()
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: dialing %s: %w", ErrConnectionFailed, endpoint, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.done = make(chan struct{})
	c.refreshArmed = false
	c.mu.Unlock()

	c.logger.Info("connected to hub", "endpoint", endpoint)
	go c.readLoop(conn)
	return nil
}

// Close disarms the refresh timer and closes the transport. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.refreshArmed = false
	if conn == nil {
		c.mu.Unlock()
		return nil
	}
	close(c.done)
	c.mu.Unlock()

	c.logger.Info("closing hub connection")
	return conn.Close()
}

// IsConnected reports whether the client currently owns a connection.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Send allocates the next correlation id, transmits the payload with the
// given type and id attached, and returns the id. Fire-and-forget: no
// acknowledgment is awaited. Returns ErrNotConnected without a live
// transport.
func (c *Client) Send(messageType string, payload map[string]any) (uint64, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return 0, fmt.Errorf("%w: cannot send %s", ErrNotConnected, messageType)
	}

	id := c.allocateID()
	msg := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		msg[k] = v
	}
	msg["type"] = messageType
	msg["id"] = id

	if err := c.write(conn, msg); err != nil {
		return 0, fmt.Errorf("sending %s: %w", messageType, err)
	}
	return id, nil
}

// ToggleLight toggles a light. Fire-and-forget; the resulting state
// arrives later as an entity state change event.
func (c *Client) ToggleLight(entityID string) error {
	return c.callLightService(ServiceToggle, entityID, nil)
}

// TurnOnLight turns a light on, optionally at a raw 0-255 brightness.
func (c *Client) TurnOnLight(entityID string, brightness *int) error {
	return c.callLightService(ServiceTurnOn, entityID, brightness)
}

// TurnOffLight turns a light off.
func (c *Client) TurnOffLight(entityID string) error {
	return c.callLightService(ServiceTurnOff, entityID, nil)
}

// callLightService builds and sends a single structured service-call
// request for the light domain.
func (c *Client) callLightService(service, entityID string, brightness *int) error {
	serviceData := map[string]any{"entity_id": entityID}
	if brightness != nil {
		serviceData["brightness"] = *brightness
	}

	_, err := c.Send(TypeCallService, map[string]any{
		"domain":       lightDomain,
		"service":      service,
		"service_data": serviceData,
	})
	return err
}

// allocateID returns the next correlation id, wrapping before the
// counter exhausts the exactly-representable integer range.
func (c *Client) allocateID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	if c.nextID > maxCorrelationID {
		c.nextID = 1
	}
	return c.nextID
}

// endpoint builds the WebSocket URL from the hub configuration.
func (c *Client) endpoint() string {
	scheme := "ws"
	if c.cfg.TLS {
		scheme = "wss"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port)),
		Path:   "/api/websocket",
	}
	return u.String()
}

// write serialises a single JSON frame onto the connection.
func (c *Client) write(conn *websocket.Conn, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(v)
}

// readLoop reads and dispatches frames until the connection goes away.
// It is the only goroutine that invokes the event handler, so handler
// executions never interleave.
func (c *Client) readLoop(conn *websocket.Conn) {
	done := c.doneChannel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				// Deliberate Close; nothing to report.
			default:
				c.logger.Warn("hub connection read failed", "error", err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.logger.Warn("dropping undecodable frame", "error", err)
			continue
		}
		c.dispatch(conn, &f)
	}
}

func (c *Client) doneChannel() chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// dispatch routes one inbound frame. Unknown frame types are ignored.
func (c *Client) dispatch(conn *websocket.Conn, f *frame) {
	switch f.Type {
	case frameAuthRequired:
		if err := c.sendAuth(conn); err != nil {
			c.logger.Error("sending credentials failed", "error", err)
		}

	case frameAuthOK:
		c.logger.Info("authenticated with hub")
		c.requestRegistries()
		c.armRefresh()

	case frameAuthInvalid:
		// Terminal: the caller must build a fresh client to retry.
		c.logger.Error("hub rejected access token, closing connection")
		if err := c.Close(); err != nil {
			c.logger.Error("closing after rejected auth", "error", err)
		}

	case frameResult:
		c.dispatchResult(f)

	case frameEvent:
		c.dispatchEvent(f)

	default:
		c.logger.Debug("ignoring unexpected frame", "type", f.Type)
	}
}

// sendAuth answers an auth_required frame. Auth frames carry no id.
func (c *Client) sendAuth(conn *websocket.Conn) error {
	return c.write(conn, map[string]any{
		"type":         TypeAuth,
		"access_token": c.cfg.AccessToken,
	})
}

// requestRegistries issues the three registry list requests plus the
// entity state subscription, recording each id in the correlation table.
// Re-issuing while a previous quartet is in flight is harmless: the table
// is overwritten, so the superseded responses no longer match and are
// dropped.
func (c *Client) requestRegistries() {
	areasID, err := c.Send(TypeAreaRegistryList, nil)
	if err != nil {
		c.logger.Warn("area registry request failed", "error", err)
		return
	}
	devicesID, err := c.Send(TypeDeviceRegistryList, nil)
	if err != nil {
		c.logger.Warn("device registry request failed", "error", err)
		return
	}
	entitiesID, err := c.Send(TypeEntityRegistryList, nil)
	if err != nil {
		c.logger.Warn("entity registry request failed", "error", err)
		return
	}
	statesID, err := c.Send(TypeSubscribeEntities, nil)
	if err != nil {
		c.logger.Warn("entity state subscription failed", "error", err)
		return
	}

	c.mu.Lock()
	c.pending = correlation{
		areas:        areasID,
		devices:      devicesID,
		entities:     entitiesID,
		entityStates: statesID,
	}
	c.mu.Unlock()

	c.logger.Debug("registry requests issued",
		"areas", areasID, "devices", devicesID,
		"entities", entitiesID, "entity_states", statesID,
	)
}

// armRefresh starts the periodic registry refresh. The ticker goroutine
// stops when the connection is closed. Arming twice on one connection is
// a no-op.
func (c *Client) armRefresh() {
	c.mu.Lock()
	if c.refreshArmed || c.conn == nil {
		c.mu.Unlock()
		return
	}
	c.refreshArmed = true
	done := c.done
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				c.logger.Debug("periodic registry refresh")
				c.requestRegistries()
			}
		}
	}()
}

// dispatchResult routes a result frame by correlation id. Results
// carrying an error are logged and dropped; results whose id matches no
// pending slot are stale and silently ignored.
func (c *Client) dispatchResult(f *frame) {
	if f.Error != nil {
		c.logger.Warn("hub returned error result",
			"id", f.ID, "code", f.Error.Code, "message", f.Error.Message,
		)
		return
	}

	c.mu.Lock()
	pending := c.pending
	c.mu.Unlock()

	var err error
	switch f.ID {
	case pending.areas:
		var areas []AreaEntry
		if err = json.Unmarshal(f.Result, &areas); err == nil {
			err = c.handler.HandleAreas(areas)
		}

	case pending.devices:
		var devices []DeviceEntry
		if err = json.Unmarshal(f.Result, &devices); err == nil {
			err = c.handler.HandleDevices(devices)
		}

	case pending.entities:
		var entities []EntityEntry
		if err = json.Unmarshal(f.Result, &entities); err == nil {
			err = c.handler.HandleEntities(entities)
		}

	case pending.entityStates:
		// Subscription ack only; states arrive as events.
		c.logger.Debug("entity state subscription acknowledged", "id", f.ID)
		return

	default:
		c.logger.Debug("ignoring stale result", "id", f.ID)
		return
	}

	if err != nil {
		c.logger.Error("registry result processing failed", "id", f.ID, "error", err)
	}
}

// dispatchEvent routes an event frame: an additive payload becomes an
// entity states event, a change payload becomes an entity state change
// event, and anything else is ignored.
func (c *Client) dispatchEvent(f *frame) {
	var ev entityEvent
	if err := json.Unmarshal(f.Event, &ev); err != nil {
		c.logger.Warn("dropping undecodable event payload", "error", err)
		return
	}

	var err error
	switch {
	case ev.Additions != nil:
		err = c.handler.HandleEntityStates(ev.Additions)
	case ev.Changes != nil:
		err = c.handler.HandleEntityStateChange(ev.Changes)
	default:
		c.logger.Debug("ignoring event with unknown payload shape")
		return
	}

	if err != nil {
		c.logger.Error("event processing failed", "error", err)
	}
}
