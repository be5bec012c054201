package mongoenum

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goydb/mongoenum/internal/adapter/textreport"
	"github.com/goydb/mongoenum/internal/controller"
	"github.com/goydb/mongoenum/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	report *model.Report
	err    error
	closed bool
}

func (s *staticSource) Report(ctx context.Context) (*model.Report, error) {
	return s.report, s.err
}

func (s *staticSource) String() string { return "<static>" }

func (s *staticSource) Close() error {
	s.closed = true
	return nil
}

func TestMongoenumRun(t *testing.T) {
	src := &staticSource{report: &model.Report{Databases: []model.DatabaseStats{
		{Name: "logs", SizeOnDisk: 1_000_000},
		{Name: "app", SizeOnDisk: 5_000_000},
	}}}
	me := &Mongoenum{
		Inventory: controller.Inventory{Source: src},
		Renderer:  textreport.Renderer{Options: textreport.DefaultOptions()},
	}

	var buf bytes.Buffer
	require.NoError(t, me.Run(context.Background(), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "Database: app -- 5 MB = 0 b + 0 b\n"), buf.String())
	assert.Contains(t, buf.String(), "Database: logs -- 1 MB")

	require.NoError(t, me.Close())
	assert.True(t, src.closed)
}

func TestMongoenumRunSourceError(t *testing.T) {
	me := &Mongoenum{Inventory: controller.Inventory{Source: &staticSource{err: errors.New("auth failed")}}}

	var buf bytes.Buffer
	err := me.Run(context.Background(), &buf)
	assert.EqualError(t, err, "failed to gather statistics from <static>: auth failed")
	assert.Empty(t, buf.String())
}
