package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig          `mapstructure:"postgres"` // PostgreSQL配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 多文档来源独立配置
	Proxy    ProxyConfig             `mapstructure:"proxy"`    // 媒体代理函数配置
	Venues   VenueConfig             `mapstructure:"venues"`   // 场地分类配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SourceConfig 单个文档来源的独立配置
type SourceConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // 文档存储API基础地址
	Collection string `mapstructure:"collection"`  // 集合名（Instagram_posts/company-events）
	Type       string `mapstructure:"type"`        // 来源类型：scraped/company-created
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数
	PageSize   int    `mapstructure:"page_size"`   // 单页拉取文档数
	AuthToken  string `mapstructure:"auth_token"`  // 认证Token
	Proxy      string `mapstructure:"proxy"`       // 代理地址
}

// ProxyConfig 媒体代理函数配置（proxyImage/proxyVideo云函数）
type ProxyConfig struct {
	BaseURL string `mapstructure:"base_url"` // 函数基础地址
	Timeout int    `mapstructure:"timeout"`  // 请求超时（秒）
	Proxy   string `mapstructure:"proxy"`    // 出站代理地址
}

// VenueConfig 场地分类配置
type VenueConfig struct {
	Clubs []string `mapstructure:"clubs"` // 已知club/festival名称列表（空则用内置默认表）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if s, ok := cfg.Sources["instagram"]; ok {
		if v := os.Getenv("INSTAGRAM_AUTH_TOKEN"); v != "" {
			s.AuthToken = v
		}
		if v := os.Getenv("INSTAGRAM_PROXY"); v != "" {
			s.Proxy = v
		}
		cfg.Sources["instagram"] = s
	}
	if s, ok := cfg.Sources["companyevents"]; ok {
		if v := os.Getenv("COMPANY_EVENTS_AUTH_TOKEN"); v != "" {
			s.AuthToken = v
		}
		cfg.Sources["companyevents"] = s
	}
	if v := os.Getenv("MEDIA_PROXY_BASE_URL"); v != "" {
		cfg.Proxy.BaseURL = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}
