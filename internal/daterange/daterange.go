// Package daterange 解析查询参数中的日期区间。
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout 查询参数日期格式
const Layout = "2006-01-02"

// DefaultDays 未指定起始日期时回溯的天数
const DefaultDays = 30

// ErrStartAfterEnd 起始日期晚于结束日期
var ErrStartAfterEnd = errors.New("start date must be before end date")

// ErrRangeTooLong 区间天数超过上限
var ErrRangeTooLong = errors.New("date range too long")

// Range 闭区间 [Start, End]，均为 UTC 零点
type Range struct {
	Start time.Time
	End   time.Time
}

// Days 区间包含的天数。按秒计算，避免 time.Duration 在超长区间上溢出
func (r Range) Days() int {
	return int((r.End.Unix()-r.Start.Unix())/86400) + 1
}

// Limit 区间超过 maxDays 天时返回 ErrRangeTooLong；maxDays <= 0 表示不限制
func (r Range) Limit(maxDays int) error {
	if maxDays > 0 && r.Days() > maxDays {
		return fmt.Errorf("%w: %d days, limit %d", ErrRangeTooLong, r.Days(), maxDays)
	}
	return nil
}

// String 形如 2024-01-01..2024-01-31
func (r Range) String() string {
	return r.Start.Format(Layout) + ".." + r.End.Format(Layout)
}

// Parse 解析起止日期。缺失或无法解析的值静默回退到默认值：
// 结束日期为 now 当天，起始日期为结束日期前 defaultDays 天。
// 仅当起始日期晚于结束日期时返回 ErrStartAfterEnd。
func Parse(startStr, endStr string, now time.Time, defaultDays int) (Range, error) {
	if defaultDays < 0 {
		defaultDays = DefaultDays
	}

	end := Day(now)
	if v, ok := parseDay(endStr); ok {
		end = v
	}
	start := Day(now).AddDate(0, 0, -defaultDays)
	if v, ok := parseDay(startStr); ok {
		start = v
	}

	r := Range{Start: start, End: end}
	if start.After(end) {
		return r, ErrStartAfterEnd
	}
	return r, nil
}

// Day 截断为 UTC 零点的日历日
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
