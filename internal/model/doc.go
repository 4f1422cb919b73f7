// Package model holds the denormalised domain model of the installation:
// areas, the lights they own, and per-area environmental sensors, plus the
// value-conversion helpers shared by the synchroniser and the command
// dispatcher (brightness scaling, RGB extraction, temperature unit
// conversion, numeric-state coercion).
//
// The model is plain data. It is owned and mutated exclusively by the
// state synchroniser; everything else reads it.
package model
