// Package pdf implementa la generación del reporte imprimible de
// trazabilidad de lotes con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del ítem + descripción                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lote | Fab. | Vence | Restante | Estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Restante en lotes / Stock según journal           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/application/reporting"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reporting.LotReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reporting.LotReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLotReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLotReport(
	_ context.Context,
	item *entity.Item,
	lots []*entity.Lot,
	currentStock decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithRightMargin(12).
		WithTopMargin(12).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, item)
	g.addLotTable(m, lots)
	g.addTotals(m, lots, currentStock)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) addHeader(m core.Maroto, item *entity.Item) {
	m.AddRows(
		text.NewRow(10, "Reporte de lotes — "+item.Name, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorPrimary,
		}),
	)
	if item.Description != "" {
		m.AddRows(text.NewRow(6, item.Description, props.Text{Size: 9, Color: colorGray}))
	}
	m.AddRows(
		text.NewRow(5, "Generado: "+time.Now().Format("2006-01-02 15:04"), props.Text{
			Size:  8,
			Color: colorGray,
		}),
		row.New(3).Add(col.New(12).Add(line.New())),
	)
}

func (g *MarotoReportGenerator) addLotTable(m core.Maroto, lots []*entity.Lot) {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	m.AddRow(7,
		text.NewCol(3, "Lote", header),
		text.NewCol(2, "Fabricación", header),
		text.NewCol(2, "Vencimiento", header),
		text.NewCol(3, "Restante", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary}),
		text.NewCol(2, "Estado", header),
	)

	cell := props.Text{Size: 9}
	for _, lot := range lots {
		state := "disponible"
		if lot.IsDepleted() {
			state = "agotado"
		}
		m.AddRow(6,
			text.NewCol(3, lot.LotNumber, cell),
			text.NewCol(2, formatDate(lot.ManufacturingDate), cell),
			text.NewCol(2, formatDate(lot.ExpiryDate), cell),
			text.NewCol(3, lot.RemainingQuantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, state, cell),
		)
	}
	if len(lots) == 0 {
		m.AddRows(text.NewRow(6, "Sin lotes registrados para este ítem.", props.Text{Size: 9, Color: colorGray}))
	}
}

func (g *MarotoReportGenerator) addTotals(m core.Maroto, lots []*entity.Lot, currentStock decimal.Decimal) {
	totalRemaining := decimal.Zero
	for _, lot := range lots {
		totalRemaining = totalRemaining.Add(lot.RemainingQuantity)
	}
	bold := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(3).Add(col.New(12).Add(line.New())),
		row.New(7).Add(
			text.NewCol(8, "Restante total en lotes", bold),
			text.NewCol(4, totalRemaining.String(), bold),
		),
		row.New(7).Add(
			text.NewCol(8, "Stock actual según journal", bold),
			text.NewCol(4, currentStock.String(), bold),
		),
	)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02")
}
