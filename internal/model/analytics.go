package model

import "time"

// DailyRecord 单日模拟指标
type DailyRecord struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Visits   int    `json:"visits"`
	Sales    int    `json:"sales"`
	Revenue  int    `json:"revenue"`
	Category string `json:"category"` // 未指定品类时为 "All"
}

// Transaction 模拟订单
type Transaction struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Amount   int    `json:"amount"`
	Status   string `json:"status"`
	Date     string `json:"date"` // YYYY-MM-DD HH:MM
}

// Stats 汇总指标（每次请求随机）
type Stats struct {
	TotalRevenue   int     `json:"total_revenue"`
	ActiveUsers    int     `json:"active_users"`
	ConversionRate float64 `json:"conversion_rate"`
	TopCategory    string  `json:"top_category"`
}

// ExportLog 导出记录
type ExportLog struct {
	ID        string    `json:"id"`
	Format    string    `json:"format"`
	Filename  string    `json:"filename"`
	Category  string    `json:"category"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Rows      int       `json:"rows"`
	SizeBytes int64     `json:"size_bytes"`
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SeriesTotals 序列合计，用于导出汇总
type SeriesTotals struct {
	Days    int
	Visits  int
	Sales   int
	Revenue int
}

// Totals 计算序列合计
func Totals(records []DailyRecord) SeriesTotals {
	t := SeriesTotals{Days: len(records)}
	for _, r := range records {
		t.Visits += r.Visits
		t.Sales += r.Sales
		t.Revenue += r.Revenue
	}
	return t
}

// AverageOrderValue 平均客单价；无销量时为 0
func (t SeriesTotals) AverageOrderValue() float64 {
	if t.Sales == 0 {
		return 0
	}
	return float64(t.Revenue) / float64(t.Sales)
}

// ConversionRate 转化率（百分比）；无访问时为 0
func (t SeriesTotals) ConversionRate() float64 {
	if t.Visits == 0 {
		return 0
	}
	return float64(t.Sales) / float64(t.Visits) * 100
}
