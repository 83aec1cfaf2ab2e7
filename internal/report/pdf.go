package report

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"nexus/internal/model"
	"nexus/internal/util"
)

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
	accent     = color.Color{Red: 130, Green: 80, Blue: 223}
)

// pdfColumns 列宽（总计 12）
var pdfColumns = []uint{3, 2, 2, 3, 2}

// WritePDF 写出 PDF 报表
func WritePDF(w io.Writer, records []model.DailyRecord, meta Meta) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 15, 20)

	m.Row(14, func() {
		m.Col(12, func() {
			m.Text("Nexus Analytics Report", props.Text{
				Size:  20,
				Style: consts.Bold,
				Color: accent,
			})
		})
	})

	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Range: %s    Category: %s", meta.Range.String(), meta.categoryLabel()), props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})
	if !meta.GeneratedAt.IsZero() {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Generated: "+meta.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
					Size:  8,
					Color: mediumGray,
				})
			})
		})
	}

	m.Row(6, func() {})

	totals := model.Totals(records)
	summary := [][2]string{
		{"Total Visits", util.FormatInt(totals.Visits)},
		{"Total Sales", util.FormatInt(totals.Sales)},
		{"Total Revenue", util.FormatCurrency(float64(totals.Revenue))},
		{"Average Order Value", util.FormatCurrency(totals.AverageOrderValue())},
		{"Conversion Rate", util.FormatPercent(totals.ConversionRate())},
	}
	for _, kv := range summary {
		m.Row(5, func() {
			m.Col(4, func() {
				m.Text(kv[0], props.Text{Size: 9, Color: mediumGray})
			})
			m.Col(4, func() {
				m.Text(kv[1], props.Text{Size: 9, Style: consts.Bold, Color: darkGray})
			})
		})
	}

	m.Row(8, func() {})

	// 表头
	m.Row(7, func() {
		for i, h := range Columns {
			m.Col(pdfColumns[i], func() {
				m.Text(h, props.Text{
					Size:  9,
					Style: consts.Bold,
					Color: darkGray,
					Align: alignFor(i),
				})
			})
		}
	})

	for _, r := range records {
		cells := []string{
			r.Date,
			util.FormatInt(r.Visits),
			util.FormatInt(r.Sales),
			util.FormatCurrency(float64(r.Revenue)),
			r.Category,
		}
		m.Row(5, func() {
			for i, v := range cells {
				m.Col(pdfColumns[i], func() {
					m.Text(v, props.Text{
						Size:  8,
						Color: darkGray,
						Align: alignFor(i),
					})
				})
			}
		})
	}

	buf, err := m.Output()
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func alignFor(col int) consts.Align {
	if col >= 1 && col <= 3 {
		return consts.Right
	}
	return consts.Left
}
