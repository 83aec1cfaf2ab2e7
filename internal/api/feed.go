package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nexus/internal/mock"
)

// GetRecentTransactions 获取最近订单
// GET /api/recent_transactions?count=
func (h *Handler) GetRecentTransactions(c *gin.Context) {
	count := h.opts.TransactionCount
	if v := c.Query("count"); v != "" {
		// 非法值静默回退
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = min(n, h.opts.MaxTransactions)
		}
	}

	c.JSON(http.StatusOK, mock.Transactions(h.rnd, count, h.opts.Now()))
}

// GetStats 获取汇总指标
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, mock.Snapshot(h.rnd))
}

// ListCategories 获取可选品类
// GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": mock.Categories})
}
