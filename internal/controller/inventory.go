package controller

import (
	"context"
	"fmt"

	"github.com/goydb/mongoenum/pkg/model"
	"github.com/goydb/mongoenum/pkg/port"
	"github.com/sirupsen/logrus"
)

// Inventory gathers and orders the statistics of a server.
type Inventory struct {
	Source port.StatsSource
	Logger logrus.FieldLogger
}

// Collect gathers the report from the source, checks it and puts
// databases and collections into display order.
func (c Inventory) Collect(ctx context.Context) (*model.Report, error) {
	report, err := c.Source.Report(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to gather statistics from %s: %w", c.Source, err)
	}

	err = report.Validate()
	if err != nil {
		return nil, err
	}

	report.Sort()

	if c.Logger != nil {
		c.Logger.WithFields(logrus.Fields{
			"databases": len(report.Databases),
			"failures":  len(report.Failures),
		}).Debug("Collected statistics")
	}

	return report, nil
}
