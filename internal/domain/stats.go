package domain

// VisitStats aggregates counts over the full submission set.
type VisitStats struct {
	Total        int64
	Feeding      int64
	Maintenance  int64
	TodayCount   int64
	ActiveAgents int64
}
