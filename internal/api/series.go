package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nexus/internal/daterange"
	"nexus/internal/mock"
	"nexus/internal/model"
)

// errStartAfterEndMessage 起止日期颠倒时返回给前端的错误
const errStartAfterEndMessage = "Start date must be before end date"

// seriesQuery 序列查询参数
type seriesQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Category  string `form:"category"`
}

// parseSeriesQuery 解析查询参数；日期非法时静默使用默认值
func (h *Handler) parseSeriesQuery(c *gin.Context) (daterange.Range, string, error) {
	var q seriesQuery
	// 仅包含字符串字段，绑定不会失败
	_ = c.ShouldBindQuery(&q)

	r, err := daterange.Parse(q.StartDate, q.EndDate, h.opts.Now(), h.opts.DefaultRangeDays)
	if err == nil {
		err = r.Limit(h.opts.MaxRangeDays)
	}
	return r, strings.TrimSpace(q.Category), err
}

// generateSeries 解析请求并生成序列；起止日期颠倒或区间过长时直接写 400
func (h *Handler) generateSeries(c *gin.Context) ([]model.DailyRecord, daterange.Range, string, bool) {
	r, category, err := h.parseSeriesQuery(c)
	if err != nil {
		if errors.Is(err, daterange.ErrStartAfterEnd) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errStartAfterEndMessage})
			return nil, r, category, false
		}
		if errors.Is(err, daterange.ErrRangeTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Date range must not exceed %d days", h.opts.MaxRangeDays),
			})
			return nil, r, category, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, r, category, false
	}
	if category != "" && !mock.IsKnownCategory(category) {
		h.log.Debug().Str("category", category).Msg("unknown category, using default modifiers")
	}
	return mock.Generate(h.rnd, r.Start, r.End, category), r, category, true
}

// GetSeries 获取每日模拟指标
// GET /api/data?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&category=
func (h *Handler) GetSeries(c *gin.Context) {
	records, r, category, ok := h.generateSeries(c)
	if !ok {
		return
	}

	h.log.Debug().
		Str("range", r.String()).
		Str("category", category).
		Int("records", len(records)).
		Msg("series generated")

	c.JSON(http.StatusOK, records)
}
