package mock

import (
	"math"
	"time"

	"nexus/internal/model"
)

const (
	// AllCategories 未指定品类时的标签
	AllCategories = "All"

	trendAmplitude  = 20.0
	trendMidline    = 100.0
	trendFrequency  = 0.1 // 约 63 天一个周期
	weekendFactor   = 1.4
	salesRate       = 0.08
	electronicsDamp = 0.6
	dateLayout      = "2006-01-02"
)

// Categories 可选品类
var Categories = []string{"Electronics", "Clothing", "Home", "Books", "Toys"}

// Generate 按天生成 [start, end] 闭区间内的模拟序列，升序，每天一条。
// 调用方负责保证 start 不晚于 end；时间部分被忽略。
func Generate(rnd Rand, start, end time.Time, category string) []model.DailyRecord {
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return []model.DailyRecord{}
	}

	label := category
	if label == "" {
		label = AllCategories
	}

	days := int(end.Sub(start).Hours()/24+0.5) + 1
	out := make([]model.DailyRecord, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, generateDay(rnd, d, category, label))
	}
	return out
}

func generateDay(rnd Rand, day time.Time, category, label string) model.DailyRecord {
	multiplier := 1.0
	if IsWeekend(day) {
		multiplier = weekendFactor
	}

	visits := int((Trend(day)*5 + float64(randInt(rnd, 50, 200))) * multiplier)
	sales := int(float64(visits)*salesRate + float64(randInt(rnd, 5, 20)))
	if category == "Electronics" {
		sales = int(float64(sales) * electronicsDamp)
	}

	var aov float64
	if category == "Books" {
		aov = uniform(rnd, 10, 40)
	} else {
		aov = uniform(rnd, 40, 150)
	}

	return model.DailyRecord{
		Date:     day.Format(dateLayout),
		Visits:   visits,
		Sales:    sales,
		Revenue:  int(float64(sales) * aov),
		Category: label,
	}
}

// Trend 季节性基线：sin(dayOfYear*0.1)*20+100
func Trend(day time.Time) float64 {
	return math.Sin(float64(day.YearDay())*trendFrequency)*trendAmplitude + trendMidline
}

// IsWeekend 周六、周日返回 true
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsKnownCategory 是否为内置品类
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
