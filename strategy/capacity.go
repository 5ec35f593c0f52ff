package strategy

// Capacity is a read-only snapshot of a byte budget and its usage. It is
// only available from strategies configured with a byte limit.
type Capacity struct {
	Total int
	Used  int
}

// Utilization is the used fraction of the budget, between 0 and 1.
func (c Capacity) Utilization() float64 {
	return float64(c.Used) / float64(c.Total)
}

// UtilizationPercent is the used fraction of the budget, between 0 and 100.
func (c Capacity) UtilizationPercent() float64 {
	return c.Utilization() * 100
}
