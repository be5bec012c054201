package mongoenum

import (
	"context"
	"io"

	"github.com/goydb/mongoenum/internal/adapter/textreport"
	"github.com/goydb/mongoenum/internal/controller"
)

type Mongoenum struct {
	Inventory controller.Inventory
	Renderer  textreport.Renderer
}

// Run collects the statistics and writes the report to w.
func (m *Mongoenum) Run(ctx context.Context, w io.Writer) error {
	report, err := m.Inventory.Collect(ctx)
	if err != nil {
		return err
	}
	return m.Renderer.Render(w, report)
}

func (m *Mongoenum) Close() error {
	return m.Inventory.Source.Close()
}
