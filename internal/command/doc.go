// Package command translates high-level lighting intents ("turn on all
// lights in the office", "dim to 40%") into hub protocol calls.
//
// Area-scoped on/off operations consult the live model first and skip
// lights already in the target state, so a command burst against an
// already-correct area issues nothing. Dimming converts percentages to
// the hub's raw brightness scale and degrades a zero-brightness request
// to a turn_off.
//
// All issued commands are fire-and-forget; state confirmation arrives
// later through the synchroniser.
package command
