package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"nexus/internal/daterange"
	"nexus/internal/middleware"
	"nexus/internal/model"
	"nexus/internal/report"
)

func buildExportContentDisposition(format report.Format) string {
	return fmt.Sprintf("attachment; filename=%q", format.Filename())
}

// parseExportFormat 解析 format 参数，非法时直接写 400
func parseExportFormat(c *gin.Context) (report.Format, bool) {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return format, true
}

// renderExport 生成序列并按格式渲染
func (h *Handler) renderExport(c *gin.Context) (*bytes.Buffer, report.Format, *model.ExportLog, bool) {
	format, ok := parseExportFormat(c)
	if !ok {
		return nil, "", nil, false
	}
	records, r, category, ok := h.generateSeries(c)
	if !ok {
		return nil, "", nil, false
	}

	var buf bytes.Buffer
	size, err := report.Write(&buf, format, records, report.Meta{
		Range:       r,
		Category:    category,
		GeneratedAt: h.opts.Now(),
	})
	if err != nil {
		h.log.Error().Err(err).Str("format", string(format)).Str("request_id", middleware.GetRequestID(c)).Msg("export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return nil, "", nil, false
	}

	entry := &model.ExportLog{
		Format:    string(format),
		Filename:  format.Filename(),
		Category:  category,
		StartDate: r.Start.Format(daterange.Layout),
		EndDate:   r.End.Format(daterange.Layout),
		Rows:      len(records),
		SizeBytes: size,
		RequestID: middleware.GetRequestID(c),
	}
	return &buf, format, entry, true
}

// recordExport 写导出历史；失败只记日志
func (h *Handler) recordExport(ctx context.Context, entry *model.ExportLog) {
	if h.store == nil {
		return
	}
	entry.CreatedAt = h.opts.Now().UTC()
	if err := h.store.CreateExportLog(ctx, entry); err != nil {
		h.log.Warn().Err(err).Str("request_id", entry.RequestID).Msg("record export failed")
	}
}

// Export 直接下载导出文件
// GET /api/export?format=csv|xlsx|pdf&start_date=&end_date=&category=
func (h *Handler) Export(c *gin.Context) {
	buf, format, entry, ok := h.renderExport(c)
	if !ok {
		return
	}
	h.recordExport(c.Request.Context(), entry)

	c.Header("Content-Disposition", buildExportContentDisposition(format))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// PrepareExport 生成导出文件并返回一次性下载地址
// POST /api/export/prepare?format=&start_date=&end_date=&category=
func (h *Handler) PrepareExport(c *gin.Context) {
	buf, format, entry, ok := h.renderExport(c)
	if !ok {
		return
	}

	dir := h.opts.ExportDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出目录失败"})
		return
	}
	tmp, err := os.CreateTemp(dir, "nexus_export_*."+string(format))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出文件失败"})
		return
	}
	tempPath := tmp.Name()
	_, werr := buf.WriteTo(tmp)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tempPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
		return
	}

	h.recordExport(c.Request.Context(), entry)

	token, expiresAt := h.downloads.put(tempPath, format, h.opts.Now(), h.opts.ExportTTL)
	prefix := strings.TrimSuffix(c.Request.URL.Path, "/export/prepare")
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"downloadUrl": fmt.Sprintf("%s/export/download/%s", prefix, token),
		"expiresAt":   expiresAt,
		"filename":    format.Filename(),
	})
}

// DownloadExport 下载预生成的导出文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token, h.opts.Now())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	defer os.Remove(item.filePath)

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.format))
	c.Header("Content-Type", item.format.ContentType())
	c.File(item.filePath)
}

// ListExports 获取导出历史
// GET /api/exports?limit=
func (h *Handler) ListExports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false, "items": []model.ExportLog{}})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, 200)
		}
	}

	items, err := h.store.ListExportLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "items": items})
}
