package response_models

// NudgeResponse is the wire shape of a nudge record. Timestamps are
// epoch milliseconds; ResolvedAt is null while unresolved.
type NudgeResponse struct {
	ID         string `json:"id"`
	ToUserID   string `json:"toUserId"`
	FromUserID string `json:"fromUserId"`
	HabitID    string `json:"habitId"`
	GroupID    string `json:"groupId"`
	Kind       string `json:"kind,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
	ResolvedAt *int64 `json:"resolvedAt"`
}

// SendResult reports the outcome of a single dispatch. A send skipped
// by the cooldown is a no-op, not a failure.
type SendResult struct {
	Sent    bool   `json:"sent"`
	NudgeID string `json:"nudgeId,omitempty"`
	Skipped string `json:"skipped,omitempty"` // reason, e.g. "cooldown"
}
