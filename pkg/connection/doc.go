// Package connection provides the retry policy for reaching the Stream Deck
// host.
//
// The host launches the plugin and passes the WebSocket port on the command
// line. On a cold start the listener can lag behind the process launch, so
// the first dial is retried with exponential backoff:
//
//  1. Initial delay: 100 milliseconds
//  2. Exponential increase: 200ms, 400ms, 800ms, 1.6s
//  3. Maximum delay: 2 seconds
//  4. Give up after the configured number of attempts
//
// # Jitter
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
//
// A lost connection is not retried: the host restarts plugins whose socket
// closes, so the process exits instead.
package connection
