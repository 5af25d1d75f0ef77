package model

// Pool is a named capacity limiter tracking slot usage.
type Pool struct {
	Name          string  `json:"name"`
	Slots         int     `json:"slots"`
	Description   *string `json:"description"`
	OccupiedSlots int     `json:"occupied_slots"`
	QueuedSlots   int     `json:"queued_slots"`
	RunningSlots  int     `json:"running_slots"`
	OpenSlots     int     `json:"open_slots"`
}

// Recalc re-derives open_slots from the current slot counts. The store
// calls it on every pool write; open_slots is never set independently.
func (p *Pool) Recalc() {
	p.OpenSlots = p.Slots - p.OccupiedSlots
}

// PoolCollection is a paginated list of pools.
type PoolCollection struct {
	Pools        []Pool `json:"pools"`
	TotalEntries int    `json:"total_entries"`
}
