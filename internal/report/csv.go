package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"nexus/internal/model"
)

// WriteCSV 写出 CSV，表头 Date,Visits,Sales,Revenue,Category
func WriteCSV(w io.Writer, records []model.DailyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Date,
			strconv.Itoa(r.Visits),
			strconv.Itoa(r.Sales),
			strconv.Itoa(r.Revenue),
			r.Category,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
