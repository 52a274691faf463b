// Package pdf implementa la generación del resumen PDF de la solicitud de
// inscripción, que se sube al contenedor de resúmenes y se adjunta en los
// correos de confirmación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la entidad + NIT  │  Trámite + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: sector, tipo, constitución, representante            │
//	│  CAPITAL: capital suscrito / valor pagado                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: soportes cargados (tipo | archivo)                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/fogafin/sief-api/internal/application/enrollment"
	"github.com/fogafin/sief-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoSummaryGenerator implementa enrollment.SummaryPDFGenerator usando Maroto v2.
type MarotoSummaryGenerator struct{}

var _ enrollment.SummaryPDFGenerator = (*MarotoSummaryGenerator)(nil)

// NewMarotoSummaryGenerator construye el generador.
func NewMarotoSummaryGenerator() *MarotoSummaryGenerator { return &MarotoSummaryGenerator{} }

// GenerateSummary genera el PDF del resumen de la solicitud y devuelve sus bytes.
func (g *MarotoSummaryGenerator) GenerateSummary(
	_ context.Context,
	e *entity.FinancialEntity,
	attachments []*entity.Attachment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de solicitud de inscripción", true).
		WithAuthor("Fogafín - Seguro de Depósitos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datosRow(e))
	m.AddRows(capitalRow(e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range attachmentRows(attachments) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre + NIT (izq) y trámite + fecha de radicación (der).
func headerRow(e *entity.FinancialEntity) core.Row {
	tramite := e.TramiteID()
	fecha := e.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(e.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+e.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SOLICITUD DE INSCRIPCIÓN - SEGURO DE DEPÓSITOS", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(tramite, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Radicación: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// datosRow: datos generales de la entidad y su representante legal.
func datosRow(e *entity.FinancialEntity) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("DATOS DE LA ENTIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Sector: %s   |   Tipo: %s   |   Constitución: %s",
				e.Sector, e.EntityType, e.ConstitutionDate.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Representante: %s   |   Email: %s   |   Tel: %s",
				e.RepresentativeName, e.RepresentativeEmail, nonEmpty(e.ContactPhone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// capitalRow: capital suscrito y valor pagado derivado.
func capitalRow(e *entity.FinancialEntity) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CAPITAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Capital suscrito: $%s   |   Valor pagado: $%s",
				e.Capital.StringFixed(2), e.PaidValue.StringFixed(2),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de soportes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo de documento", 5, align.Left),
		h("Archivo", 7, align.Left),
	)
}

// attachmentRows: una fila por soporte cargado.
func attachmentRows(attachments []*entity.Attachment) []core.Row {
	result := make([]core.Row, 0, len(attachments))
	for _, a := range attachments {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				a.DocumentType,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(7).Add(text.New(
				a.Filename,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
