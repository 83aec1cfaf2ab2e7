package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName 配置文件名，位于可执行文件同目录
const ConfigFileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Mock   MockConfig   `toml:"mock"`
	Data   DataConfig   `toml:"data"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port                   int    `toml:"port"`
	DevMode                bool   `toml:"dev_mode"`
	OpenBrowser            bool   `toml:"open_browser"`
	StaticDir              string `toml:"static_dir"` // 为空时使用内嵌前端
	DevFrontendURL         string `toml:"dev_frontend_url"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console / json
}

// MockConfig 模拟数据配置
type MockConfig struct {
	Seed             uint64 `toml:"seed"` // 0 表示随机
	DefaultRangeDays int    `toml:"default_range_days"`
	MaxRangeDays     int    `toml:"max_range_days"`
	TransactionCount int    `toml:"transaction_count"`
	MaxTransactions  int    `toml:"max_transactions"`
}

// DataConfig 数据目录配置
type DataConfig struct {
	DataDir          string `toml:"data_dir"`
	ExportTTLMinutes int    `toml:"export_ttl_minutes"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:                   5000,
			DevMode:                false,
			OpenBrowser:            true,
			DevFrontendURL:         "http://localhost:5173",
			ShutdownTimeoutSeconds: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Mock: MockConfig{
			Seed:             0,
			DefaultRangeDays: 30,
			MaxRangeDays:     3650,
			TransactionCount: 10,
			MaxTransactions:  100,
		},
		Data: DataConfig{
			DataDir:          "data",
			ExportTTLMinutes: 10,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件目录下的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return LoadFile(filepath.Join(exeDir, ConfigFileName))
}

// LoadFile 从指定路径加载配置；文件不存在时返回默认配置。
// 加载后依次应用 .env 与环境变量覆盖。
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// .env 不存在不算错误
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}
	if applyEnv(cfg) {
		info.PortSpecified = true
	}

	cfg.normalize()
	return cfg, info, nil
}

// applyEnv 环境变量覆盖；返回是否通过环境变量指定了端口
func applyEnv(cfg *AppConfig) (portSet bool) {
	if v := os.Getenv("NEXUS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
			portSet = true
		}
	}
	if v := os.Getenv("NEXUS_DEV"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Server.DevMode = b
		}
	}
	if v := os.Getenv("NEXUS_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("NEXUS_SEED"); v != "" {
		if s, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Mock.Seed = s
		}
	}
	if v := os.Getenv("NEXUS_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv("NEXUS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	return portSet
}

// normalize 修正非法取值
func (c *AppConfig) normalize() {
	def := DefaultConfig()
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = def.Server.ShutdownTimeoutSeconds
	}
	if c.Mock.DefaultRangeDays < 0 {
		c.Mock.DefaultRangeDays = def.Mock.DefaultRangeDays
	}
	if c.Mock.MaxRangeDays <= 0 {
		c.Mock.MaxRangeDays = def.Mock.MaxRangeDays
	}
	if c.Mock.MaxTransactions <= 0 {
		c.Mock.MaxTransactions = def.Mock.MaxTransactions
	}
	if c.Mock.TransactionCount <= 0 || c.Mock.TransactionCount > c.Mock.MaxTransactions {
		c.Mock.TransactionCount = min(def.Mock.TransactionCount, c.Mock.MaxTransactions)
	}
	if c.Data.ExportTTLMinutes <= 0 {
		c.Data.ExportTTLMinutes = def.Data.ExportTTLMinutes
	}
	if c.Data.DataDir == "" {
		c.Data.DataDir = def.Data.DataDir
	}
}

// SaveConfig 保存配置到指定路径
func SaveConfig(cfg *AppConfig, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录存在，返回绝对路径。
// 相对路径相对于可执行文件目录。
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
