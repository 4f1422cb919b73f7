// Package hub implements the WebSocket protocol client for the
// home-automation hub.
//
// The client owns one persistent connection. After the authentication
// handshake it issues the area/device/entity registry requests, each
// tagged with a monotonically increasing correlation id, and subscribes
// to the compacted entity state stream. Inbound frames are decoded as a
// closed tagged union and dispatched sequentially from a single read
// loop to a typed EventHandler; unknown frames are logged and dropped.
//
// A periodic refresh re-issues the registry requests to self-heal from
// missed events. Since the correlation table only ever holds the
// most-recently-issued id per request kind, responses to superseded
// requests fail the id match and are silently discarded.
//
// Outbound light commands (toggle, turn_on, turn_off) are fire-and-forget:
// the call returns once the frame is written, and the effect shows up
// later, unordered, as an entity state change event.
package hub
