package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"nexus/internal/model"
	"nexus/internal/util"
)

const (
	dataSheet    = "Analytics"
	summarySheet = "Summary"
)

// BuildWorkbook 构建工作簿：Analytics 明细 + Summary 汇总
func BuildWorkbook(records []model.DailyRecord, meta Meta) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#8250DF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// 表头
	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(dataSheet, cell, h)
	}
	f.SetRowStyle(dataSheet, 1, 1, headerStyle)

	// 明细
	for i, r := range records {
		row := i + 2
		f.SetCellValue(dataSheet, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(dataSheet, fmt.Sprintf("B%d", row), r.Visits)
		f.SetCellValue(dataSheet, fmt.Sprintf("C%d", row), r.Sales)
		f.SetCellValue(dataSheet, fmt.Sprintf("D%d", row), r.Revenue)
		f.SetCellValue(dataSheet, fmt.Sprintf("E%d", row), r.Category)
	}
	f.SetColWidth(dataSheet, "A", "A", 14)
	f.SetColWidth(dataSheet, "B", "D", 12)
	f.SetColWidth(dataSheet, "E", "E", 16)

	// 汇总
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	totals := model.Totals(records)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Range", meta.Range.String()},
		{"Category", meta.categoryLabel()},
		{"Days", totals.Days},
		{"Total Visits", totals.Visits},
		{"Total Sales", totals.Sales},
		{"Total Revenue", totals.Revenue},
		{"Average Order Value", util.FormatCurrency(totals.AverageOrderValue())},
		{"Conversion Rate", util.FormatPercent(totals.ConversionRate())},
	}
	if !meta.GeneratedAt.IsZero() {
		summary = append(summary, []interface{}{"Generated At", meta.GeneratedAt.Format("2006-01-02 15:04:05")})
	}
	for i, row := range summary {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(summarySheet, cell, val)
		}
	}
	f.SetRowStyle(summarySheet, 1, 1, headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 22)
	f.SetColWidth(summarySheet, "B", "B", 26)

	return f, nil
}

// WriteXLSX 写出 XLSX
func WriteXLSX(w io.Writer, records []model.DailyRecord, meta Meta) error {
	f, err := BuildWorkbook(records, meta)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
