// Package action implements the timer button.
//
// Each key bound to the action runs a TimerButton. A short press starts a
// timing session; further short presses append the elapsed time and the
// configured information text to the data file; a long press stops the
// session. While a session runs the key title shows the elapsed time,
// refreshed every second.
//
// # State
//
// The only persisted state is the Settings record the host stores per key.
// A session is running exactly when StartTimeStamp is set, so a running
// session survives plugin restarts: the next WillAppear resumes the
// refresh from the stored start.
//
//	         short press (truncate data file)
//	  IDLE ─────────────────────────────────▶ RUNNING ──┐
//	   ▲                                         │      │ short press
//	   └──────────── long press ─────────────────┘  ◀───┘ (append line)
package action
