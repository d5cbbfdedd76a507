// Package streamdeck implements the plugin side of the Stream Deck host
// protocol.
//
// The host launches the plugin executable with four arguments:
//
//	-port <n> -pluginUUID <uuid> -registerEvent <name> -info <json>
//
// and listens for a WebSocket connection on ws://127.0.0.1:<port>. The
// plugin's first frame registers it:
//
//	{"event": "<registerEvent>", "uuid": "<pluginUUID>"}
//
// after which every frame is a JSON object naming an event. Per-action
// events carry the action UUID, the button instance "context" and a payload
// with the instance's persisted settings:
//
//	{"action":"...","event":"keyUp","context":"...","device":"...",
//	 "payload":{"settings":{...},"coordinates":{"column":0,"row":0}}}
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│   Handler (one per context)    │
//	├────────────────────────────────┤
//	│   Plugin dispatcher            │
//	├────────────────────────────────┤
//	│   JSON events / commands       │
//	├────────────────────────────────┤
//	│   WebSocket text frames        │
//	├────────────────────────────────┤
//	│   TCP loopback                 │
//	└────────────────────────────────┘
//
// # Dispatch
//
// The Plugin reads one frame at a time and runs the matching Handler method
// to completion before reading the next, so handlers never run concurrently
// with each other. Handlers are created per context on first use from the
// Factory registered for the action UUID.
package streamdeck
