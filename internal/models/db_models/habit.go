package db_models

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

type Habit struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	Frequency    Frequency `json:"frequency"`
	TimesPerWeek int       `json:"timesPerWeek,omitempty"`
	GroupIDs     []string  `json:"groupIds"`
	CreatedAt    string    `json:"createdAt"` // day key

	// Derived from the completion log; recomputed on every toggle and
	// never trusted across a reconciliation boundary.
	Completed bool `json:"completed"`
	Streak    int  `json:"streak"`
}

func (h *Habit) HasGroup(groupID string) bool {
	for _, id := range h.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
