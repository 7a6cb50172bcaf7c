package db_models

type NudgeKind string

const (
	NudgeKindDirect   NudgeKind = "direct"
	NudgeKindGroup    NudgeKind = "group"
	NudgeKindPending  NudgeKind = "pending"
	NudgeKindInactive NudgeKind = "inactive"
)

// Nudge records terminate by resolution, never by deletion.
type Nudge struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	HabitID    string    `json:"habitId"`
	GroupID    string    `json:"groupId"`
	Kind       NudgeKind `json:"kind,omitempty"`
	CreatedAt  int64     `json:"createdAt"`  // epoch ms
	ResolvedAt *int64    `json:"resolvedAt"` // epoch ms, nil while unresolved
}

func (n *Nudge) Resolved() bool { return n.ResolvedAt != nil }
