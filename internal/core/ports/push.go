package ports

import "context"

// PushSender delivers a push notification to one device token. Delivery is
// fire-and-forget: implementations log failures and callers never treat a
// send error as a failure of the primary operation.
type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}
