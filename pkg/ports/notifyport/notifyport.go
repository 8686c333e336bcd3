// Package notifyport defines the outbound interfaces the dispatcher uses to
// hand completed submissions to a human operator and to pull static content.
package notifyport

import (
	"context"
	"time"
)

// Notifier delivers one operator notification. A nil error means the
// notification was accepted for delivery by the channel.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// Fetcher retrieves a remote text document, such as the purchase terms.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Record is one structured entry for the optional application log.
type Record struct {
	Timestamp time.Time
	Fields    map[string]string
}

// AppLogger appends submission records to a durable log. Implementations must
// be safe for concurrent use.
type AppLogger interface {
	Append(ctx context.Context, rec Record) error
}
