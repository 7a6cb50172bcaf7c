package notify

import "context"

// Notifier tells an already-open client session that its partition
// changed and should be re-read. Delivery is best effort: state is
// re-derivable, so a lost notification only delays a refresh until
// the next reconciliation trigger.
type Notifier interface {
	HabitsChanged(ctx context.Context, userID string) error
	NudgeReceived(ctx context.Context, userID string) error
}
