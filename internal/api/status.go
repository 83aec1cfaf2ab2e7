package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nexus/internal/mock"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	Seeded     bool   `json:"seeded"`     // 是否固定随机种子
	Categories int    `json:"categories"` // 内置品类数
	History    bool   `json:"history"`    // 是否记录导出历史
	Exports    int    `json:"exports"`    // 累计导出次数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Status:     "ok",
		Version:    h.opts.Version,
		Uptime:     h.opts.Now().Sub(h.startedAt).Round(time.Second).String(),
		Seeded:     h.opts.Seeded,
		Categories: len(mock.Categories),
		History:    h.store != nil,
	}

	if h.store != nil {
		n, err := h.store.CountExportLogs(c.Request.Context())
		if err != nil {
			h.log.Warn().Err(err).Msg("count export logs failed")
		}
		resp.Exports = n
	}

	c.JSON(http.StatusOK, resp)
}
