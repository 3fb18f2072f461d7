package gateways

import "context"

// Notifier dispatches a notification template about a record. Delivery is best effort;
// callers log failures and carry on.
type Notifier interface {
	Send(ctx context.Context, templateID, recordID string) error
}
