package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nexus/internal/mock"
	"nexus/internal/store"
)

// Options API 处理器参数
type Options struct {
	Rand             mock.Rand
	Store            *store.Store // 为 nil 时不记录导出历史
	Logger           zerolog.Logger
	Seeded           bool
	Version          string
	DefaultRangeDays int
	MaxRangeDays     int
	TransactionCount int
	MaxTransactions  int
	ExportDir        string // 预生成导出文件目录，为空时使用系统临时目录
	ExportTTL        time.Duration
	Now              func() time.Time
}

// Handler API 处理器
type Handler struct {
	opts      Options
	rnd       mock.Rand
	store     *store.Store
	log       zerolog.Logger
	downloads *exportDownloadStore
	startedAt time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	if opts.Rand == nil {
		opts.Rand = mock.NewLockedRand(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultRangeDays < 0 {
		opts.DefaultRangeDays = 30
	}
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = 3650
	}
	if opts.MaxTransactions <= 0 {
		opts.MaxTransactions = 100
	}
	if opts.TransactionCount <= 0 {
		opts.TransactionCount = mock.DefaultTransactionCount
	}
	if opts.ExportTTL <= 0 {
		opts.ExportTTL = 10 * time.Minute
	}

	return &Handler{
		opts:      opts,
		rnd:       opts.Rand,
		store:     opts.Store,
		log:       opts.Logger,
		downloads: newExportDownloadStore(),
		startedAt: opts.Now(),
	}
}

// Close 删除尚未下载的预生成导出文件
func (h *Handler) Close() {
	h.downloads.purgeAll()
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 模拟数据
	router.GET("/data", h.GetSeries)
	router.GET("/recent_transactions", h.GetRecentTransactions)
	router.GET("/stats", h.GetStats)
	router.GET("/categories", h.ListCategories)

	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据导出
	router.GET("/export", h.Export)
	router.POST("/export/prepare", h.PrepareExport)
	router.GET("/export/download/:token", h.DownloadExport)
	router.GET("/exports", h.ListExports)
}
