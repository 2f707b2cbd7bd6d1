package domain

import "context"

// Gatherer supplies the already-parsed quote corpus for a query. The
// acquisition boundary is responsible for normalization, truncation and for
// dropping empty or pinned records; the pipeline only ever sees typed,
// non-empty quotes.
type Gatherer interface {
	Gather(ctx context.Context, q Query) ([]Quote, error)
}
