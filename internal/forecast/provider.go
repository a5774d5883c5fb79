package forecast

import (
	"context"
	"time"
)

// Source abstracts a daily forecast provider (e.g. Weatherbit).
type Source interface {
	Name() string
	FetchDaily(ctx context.Context, city string, days int) ([]RawRecord, error)
}

// Store holds the current display sequence for one dashboard session.
// Replace must swap the whole sequence at once.
type Store interface {
	Replace(records []DisplayRecord)
	Records() []DisplayRecord
	UpdatedAt() time.Time
}
