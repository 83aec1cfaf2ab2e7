package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nexus/internal/api"
	"nexus/internal/config"
	"nexus/internal/middleware"
	"nexus/internal/mock"
	"nexus/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	store   *store.Store
	api     *api.Handler
	log     zerolog.Logger
	static  fs.FS
	httpSrv *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log zerolog.Logger, version string) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	st, err := store.New(filepath.Join(dataDir, "nexus.db"))
	if err != nil {
		return nil, fmt.Errorf("open export history: %w", err)
	}

	static, err := staticFS(cfg.Server.StaticDir)
	if err != nil {
		st.Close()
		return nil, err
	}

	apiHandler := api.NewHandler(api.Options{
		Rand:             mock.NewLockedRand(cfg.Mock.Seed),
		Store:            st,
		Logger:           log,
		Seeded:           cfg.Mock.Seed != 0,
		Version:          version,
		DefaultRangeDays: cfg.Mock.DefaultRangeDays,
		MaxRangeDays:     cfg.Mock.MaxRangeDays,
		TransactionCount: cfg.Mock.TransactionCount,
		MaxTransactions:  cfg.Mock.MaxTransactions,
		ExportDir:        filepath.Join(dataDir, "exports"),
		ExportTTL:        time.Duration(cfg.Data.ExportTTLMinutes) * time.Minute,
	})

	s := &Server{
		cfg:    cfg,
		router: gin.New(),
		store:  st,
		api:    apiHandler,
		log:    log,
		static: static,
	}
	s.setupRoutes()
	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// staticFS 前端资源：指定目录优先，否则使用内嵌 dist
func staticFS(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(staticFiles, "dist")
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(s.log),
		cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	)

	apiGroup := s.router.Group("/api")
	s.api.RegisterRoutes(apiGroup)

	if s.cfg.Server.DevMode {
		// 开发模式：非 API 请求转到前端开发服务器
		devURL := strings.TrimSuffix(s.cfg.Server.DevFrontendURL, "/")
		s.router.NoRoute(func(c *gin.Context) {
			if isAPIPath(c.Request.URL.Path) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, devURL+c.Request.URL.RequestURI())
		})
		return
	}

	// 首页
	s.router.GET("/", func(c *gin.Context) {
		s.serveStatic(c, "index.html")
	})

	// 其余静态资源
	s.router.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusMethodNotAllowed)
			return
		}
		s.serveStatic(c, c.Request.URL.Path)
	})
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// serveStatic 从前端资源中读取文件；不存在或为目录时返回 404
func (s *Server) serveStatic(c *gin.Context, name string) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		name = "index.html"
	}

	info, err := fs.Stat(s.static, name)
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	data, err := fs.ReadFile(s.static, name)
	if err != nil {
		c.String(http.StatusInternalServerError, "read static file failed")
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}

// Handler 返回 HTTP 处理器（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，正常关闭时返回 nil
func (s *Server) Run(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve 在已有监听上提供服务
func (s *Server) Serve(ln net.Listener) error {
	if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭，清理未下载的导出文件并释放存储
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	s.api.Close()
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
