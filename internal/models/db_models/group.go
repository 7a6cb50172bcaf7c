package db_models

// Group is owned by its creator's partition; every other member holds
// a copy keyed by the same id.
type Group struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	TotalDays  int    `json:"totalDays"`
	InviteCode string `json:"inviteCode"`
	CreatedAt  int64  `json:"createdAt"` // epoch ms
}

// GroupMember exists once per (group, partition). Inside an owner's
// own partition their record carries the self alias; everywhere else
// it carries the real user id.
type GroupMember struct {
	ID       UserRef `json:"id"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar"`
	JoinedAt int64   `json:"joinedAt"` // epoch ms
}
