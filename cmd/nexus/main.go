package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"nexus/internal/config"
	"nexus/internal/logging"
	"nexus/internal/server"
	"nexus/internal/util"
)

var version = "dev"

var (
	port      = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode   = flag.Bool("dev", false, "开发模式")
	dataDir   = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	seed      = flag.Uint64("seed", 0, "随机种子，非 0 时生成可复现的数据")
	noBrowser = flag.Bool("no-browser", false, "启动后不自动打开浏览器")
	writeCfg  = flag.Bool("write-config", false, "将当前生效的配置写入 config.toml 后退出")
)

func main() {
	flag.Parse()

	title := color.New(color.FgMagenta, color.Bold)
	title.Println("==========================================")
	title.Println("  Nexus - 电商模拟数据看板")
	title.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		color.Yellow("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *seed != 0 {
		cfg.Mock.Seed = *seed
	}
	if *noBrowser {
		cfg.Server.OpenBrowser = false
	}

	if *writeCfg {
		path := info.Path
		if path == "" {
			path = config.ConfigFileName
		}
		if err := config.SaveConfig(cfg, path); err != nil {
			color.Red("写入配置失败: %v", err)
			os.Exit(1)
		}
		color.Green("配置已写入 %s", path)
		return
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if info.FileFound {
		log.Info().Str("path", info.Path).Msg("config loaded")
	}

	srv, err := server.NewServer(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("创建服务失败")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Bool("dev", cfg.Server.DevMode).Uint64("seed", cfg.Mock.Seed).Msg("服务启动中")
		errCh <- srv.Run(addr)
	}()

	switch {
	case cfg.Server.DevMode:
		color.Cyan("开发模式: 请访问 %s", url)
	case cfg.Server.OpenBrowser:
		color.Cyan("正在打开浏览器: %s", url)
		if err := util.OpenBrowser(url); err != nil {
			color.Yellow("无法自动打开浏览器，请手动访问: %s", url)
		}
	default:
		color.Cyan("请访问 %s", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("服务启动失败")
		}
	case <-quit:
	}

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("关闭服务失败")
	}
}
