package dto

// StatsResponse carries the aggregate reporting figures. ActiveAgents counts
// distinct agents that have submitted at least one report; TodayCount covers
// the current UTC calendar day.
type StatsResponse struct {
	Total        int64 `json:"total"`
	Feeding      int64 `json:"feeding"`
	Maintenance  int64 `json:"maintenance"`
	TodayCount   int64 `json:"todayCount"`
	ActiveAgents int64 `json:"activeAgents"`
}
