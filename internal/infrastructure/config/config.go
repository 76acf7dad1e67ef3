package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Store       StoreConfig     `mapstructure:"store"`
	Curation    CurationConfig  `mapstructure:"curation"`
	Selection   SelectionConfig `mapstructure:"selection"`
	Annotate    AnnotateConfig  `mapstructure:"annotate"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StoreConfig 食譜資料來源設定
type StoreConfig struct {
	Driver      string `mapstructure:"driver"`       // json 或 sqlite
	Path        string `mapstructure:"path"`         // json 檔或 sqlite 檔路徑
	CuratedPath string `mapstructure:"curated_path"` // 精選食譜輸出路徑（json driver 用）
}

// CurationConfig 精選篩選門檻（對應 curation 腳本的常數）
type CurationConfig struct {
	MinProtein     float64 `mapstructure:"min_protein"`     // 每份最低蛋白質（克）
	MaxProtein     float64 `mapstructure:"max_protein"`     // 上限用來排除資料錯誤
	MinRating      float64 `mapstructure:"min_rating"`      // 最低評分（滿分 5）
	MinIngredients int     `mapstructure:"min_ingredients"` // 食材數下限
	MaxIngredients int     `mapstructure:"max_ingredients"` // 食材數上限
}

// SelectionConfig 隨機選餐設定
type SelectionConfig struct {
	NumRecipes    int           `mapstructure:"num_recipes"`
	MinRating     float64       `mapstructure:"min_rating"`
	MealType      string        `mapstructure:"meal_type"`      // entree、soup、...、any
	ProteinSource string        `mapstructure:"protein_source"` // chicken、beef、...、any
	WebhookURL    string        `mapstructure:"webhook_url"`    // 通知用 Apps Script 網址
	Timeout       time.Duration `mapstructure:"timeout"`
}

// AnnotateConfig 批次標註設定
type AnnotateConfig struct {
	Workers int `mapstructure:"workers"`
}

// CacheConfig 估價快取配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RedisAddr       string        `mapstructure:"redis_addr"` // 空字串時使用記憶體快取
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（允許不存在）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量（沿用 cron 腳本時代的變數名稱）
	viper.BindEnv("store.driver", "STORE_DRIVER")
	viper.BindEnv("store.path", "RECIPES_JSON")
	viper.BindEnv("store.curated_path", "CURATED_RECIPES_JSON")
	viper.BindEnv("curation.min_protein", "MIN_PROTEIN")
	viper.BindEnv("curation.max_protein", "MAX_PROTEIN")
	viper.BindEnv("curation.min_rating", "CURATION_MIN_RATING")
	viper.BindEnv("curation.min_ingredients", "MIN_INGREDIENTS")
	viper.BindEnv("curation.max_ingredients", "MAX_INGREDIENTS")
	viper.BindEnv("selection.num_recipes", "NUM_RECIPES")
	viper.BindEnv("selection.min_rating", "MIN_RATING")
	viper.BindEnv("selection.meal_type", "MEAL_TYPE")
	viper.BindEnv("selection.protein_source", "PROTEIN_SOURCE")
	viper.BindEnv("selection.webhook_url", "APPS_SCRIPT_URL")
	viper.BindEnv("annotate.workers", "ANNOTATE_WORKERS")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-curator")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 資料來源設定
	viper.SetDefault("store.driver", "json")
	viper.SetDefault("store.path", "data/full_format_recipes.json")
	viper.SetDefault("store.curated_path", "data/curated_recipes.json")

	// 精選門檻（高蛋白、好評、簡單）
	viper.SetDefault("curation.min_protein", 25.0)
	viper.SetDefault("curation.max_protein", 100.0)
	viper.SetDefault("curation.min_rating", 4.0)
	viper.SetDefault("curation.min_ingredients", 3)
	viper.SetDefault("curation.max_ingredients", 15)

	// 選餐設定
	viper.SetDefault("selection.num_recipes", 5)
	viper.SetDefault("selection.min_rating", 3.5)
	viper.SetDefault("selection.meal_type", "entree")
	viper.SetDefault("selection.protein_source", "any")
	viper.SetDefault("selection.webhook_url", "")
	viper.SetDefault("selection.timeout", "15s")

	// 標註設定
	viper.SetDefault("annotate.workers", 5)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.redis_addr", "")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 去重窗口預設
	viper.SetDefault("dedup_window", "1s")

	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證資料來源設定
	switch config.Store.Driver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}
	if config.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}

	// 驗證精選門檻
	if config.Curation.MinProtein > config.Curation.MaxProtein {
		return fmt.Errorf("invalid protein range")
	}
	if config.Curation.MinIngredients > config.Curation.MaxIngredients {
		return fmt.Errorf("invalid ingredient count range")
	}

	// 驗證標註設定
	if config.Annotate.Workers <= 0 {
		return fmt.Errorf("invalid annotate workers")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	return nil
}
