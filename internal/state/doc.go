// Package state is the synchronisation engine between the hub's
// registry+event stream and the domain model.
//
// The hub delivers four independent results per sync cycle: the area,
// device and entity registries plus a full entity state snapshot. The
// Manager stages each in a buffer and rebuilds the model only once all
// four are present, regardless of arrival order. The rebuild is
// all-or-nothing: a structurally inconsistent registry (an entity whose
// device or area cannot be resolved) aborts the pass and keeps the
// previous model.
//
// Sparse change events follow one of two paths. While a state snapshot
// is staged, changes merge into it and surface in the upcoming rebuild.
// Otherwise they apply directly to the live model: lights are matched by
// entity id, sensors through the per-area dashboard configuration. There
// is deliberately no deferred buffer for sensor changes before the first
// rebuild; the periodic refresh re-delivers those readings.
//
// The package also exposes the derived read operations used by command
// adapters: per-area lights, average brightness, formatted sensor
// readings, and the CO2 danger classification.
package state
