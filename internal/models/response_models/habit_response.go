package response_models

type HabitResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	Frequency    string   `json:"frequency"`
	TimesPerWeek int      `json:"timesPerWeek,omitempty"`
	GroupIDs     []string `json:"groupIds"`
	CreatedAt    string   `json:"createdAt"`
	Completed    bool     `json:"completed"`
	Streak       int      `json:"streak"`
}

type StreakResponse struct {
	HabitID     string `json:"habitId"`
	DailyStreak int    `json:"dailyStreak"`
	WeeklyCount int    `json:"weeklyCount"`
	WeekStreak  int    `json:"weekStreak,omitempty"`
}

type GroupResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	TotalDays  int    `json:"totalDays"`
	InviteCode string `json:"inviteCode"`
	CreatedAt  int64  `json:"createdAt"`
}
