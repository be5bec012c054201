package port

import (
	"context"

	"github.com/goydb/mongoenum/pkg/model"
)

// StatsSource gathers the statistics of every database and collection
// of a single server.
type StatsSource interface {
	Report(ctx context.Context) (*model.Report, error)
	String() string
	Close() error
}
