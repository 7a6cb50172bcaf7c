package response_models

// RosterEntry is one member of a merged group roster. The requesting
// user appears under the generic self id/label; everyone else appears
// under their real id.
type RosterEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	JoinedAt int64  `json:"joinedAt"`
}
