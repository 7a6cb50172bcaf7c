package db_models

// CompletionEvent is the sole source of truth for completion state.
// At most one exists per (habit, day); a later toggle overwrites the
// flag in place rather than appending a second event.
type CompletionEvent struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // day key
	Completed bool   `json:"completed"`
}
