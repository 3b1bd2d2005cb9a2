// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Data      DataConfig      `mapstructure:"data"`
	Database  DatabaseConfig  `mapstructure:"database"`
	TFIDF     TFIDFConfig     `mapstructure:"tfidf"`
	Trends    TrendsConfig    `mapstructure:"trends"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// DataConfig 存储语料数据来源的配置。
// Source 可选 "csv"（默认）或 "mysql"。
type DataConfig struct {
	Source       string `mapstructure:"source"`
	ArticlesPath string `mapstructure:"articles_path"`
	KeywordsPath string `mapstructure:"keywords_path"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TFIDFConfig 存储 TF-IDF 向量化相关的配置。
type TFIDFConfig struct {
	MaxFeatures int `mapstructure:"max_features"`
}

// TrendsConfig 存储热点词估计相关的配置。
// CacheBackend 可选 "file"（默认）或 "redis"；
// Granularity 决定缓存键的粒度，可选 "daily"（默认）或 "weekly"。
type TrendsConfig struct {
	CacheBackend string      `mapstructure:"cache_backend"`
	CacheDir     string      `mapstructure:"cache_dir"`
	Granularity  string      `mapstructure:"granularity"`
	RecentYears  int         `mapstructure:"recent_years"`
	Arxiv        ArxivConfig `mapstructure:"arxiv"`
}

// ArxivConfig 存储 arXiv Atom 接口相关的配置。
type ArxivConfig struct {
	APIURL         string `mapstructure:"api_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxResults     int    `mapstructure:"max_results"`
	WindowDays     int    `mapstructure:"window_days"`
}

// RecommendConfig 存储推荐算法相关的配置。
type RecommendConfig struct {
	TopKMain     int     `mapstructure:"top_k_main"`
	TopKSimilar  int     `mapstructure:"top_k_similar"`
	ProfileAlpha float64 `mapstructure:"profile_alpha"`
	HotTerms     int     `mapstructure:"hot_terms"`
	SearchLimit  int     `mapstructure:"search_limit"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 未显式配置时的缺省值
	viper.SetDefault("data.source", "csv")
	viper.SetDefault("tfidf.max_features", 50000)
	viper.SetDefault("trends.cache_backend", "file")
	viper.SetDefault("trends.granularity", "daily")
	viper.SetDefault("trends.recent_years", 3)
	viper.SetDefault("trends.arxiv.timeout_seconds", 10)
	viper.SetDefault("trends.arxiv.max_results", 10)
	viper.SetDefault("trends.arxiv.window_days", 7)
	viper.SetDefault("recommend.top_k_main", 10)
	viper.SetDefault("recommend.top_k_similar", 10)
	viper.SetDefault("recommend.profile_alpha", 0.6)
	viper.SetDefault("recommend.hot_terms", 10)
	viper.SetDefault("recommend.search_limit", 10)

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}
