// Package report 将模拟序列导出为 CSV / XLSX / PDF。
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"nexus/internal/daterange"
	"nexus/internal/model"
)

// Format 导出格式
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// FilenameBase 导出文件名前缀
const FilenameBase = "nexus_analytics_export"

// ErrUnknownFormat 不支持的导出格式
var ErrUnknownFormat = errors.New("unknown export format")

// Columns 导出列
var Columns = []string{"Date", "Visits", "Sales", "Revenue", "Category"}

// ParseFormat 解析导出格式，空字符串视为 csv
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType 响应类型
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename 下载文件名
func (f Format) Filename() string {
	return FilenameBase + "." + string(f)
}

// Meta 导出附带信息
type Meta struct {
	Range       daterange.Range
	Category    string
	GeneratedAt time.Time
}

func (m Meta) categoryLabel() string {
	if m.Category == "" {
		return "All"
	}
	return m.Category
}

// Write 按格式写出序列，返回写入字节数
func Write(w io.Writer, f Format, records []model.DailyRecord, meta Meta) (int64, error) {
	cw := &countingWriter{w: w}
	var err error
	switch f {
	case FormatCSV:
		err = WriteCSV(cw, records)
	case FormatXLSX:
		err = WriteXLSX(cw, records, meta)
	case FormatPDF:
		err = WritePDF(cw, records, meta)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
