package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Seed     SeedConfig     `yaml:"seed"`
	Site     SiteConfig     `yaml:"site"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type FetchConfig struct {
	DonorRSSURL string `yaml:"donor_rss_url"`  // 上游RSS地址
	IntervalMin int    `yaml:"interval_min"`   // 抓取间隔(分钟)
	UserAgent   string `yaml:"user_agent"`
	MaxArticles int    `yaml:"max_articles"` // 每轮最多处理的条目数
}

type SeedConfig struct {
	DonorSitemapURL  string `yaml:"donor_sitemap_url"`  // 上游站点地图地址
	TargetPathPrefix string `yaml:"target_path_prefix"` // 只导入带此前缀的链接
	MaxArticles      int    `yaml:"max_articles"`       // 最多导入的文章数
}

type SiteConfig struct {
	ArticlesPerPage int    `yaml:"articles_per_page"`
	GAMeasurementID string `yaml:"ga_measurement_id"`
}

// Load 加载配置文件,环境变量优先级最高
func Load(configPath string) (*Config, error) {
	// 默认配置
	cfg := &Config{
		Server: ServerConfig{
			Port: "8000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Path: "data/mirror.db",
		},
		Fetch: FetchConfig{
			IntervalMin: 30,
			UserAgent:   "RSSFetcher/1.0",
			MaxArticles: 10,
		},
		Seed: SeedConfig{
			MaxArticles: 100,
		},
		Site: SiteConfig{
			ArticlesPerPage: 10,
		},
	}

	// 如果配置文件存在,读取配置
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else {
		log.Printf("配置文件不存在: %s, 使用默认配置", configPath)
	}

	// 环境变量覆盖配置
	overrideString(&cfg.Server.Port, "PORT")
	overrideString(&cfg.Server.Mode, "GIN_MODE")
	overrideString(&cfg.Database.Path, "DB_PATH")
	overrideString(&cfg.Fetch.DonorRSSURL, "DONOR_RSS_URL")
	overrideString(&cfg.Fetch.UserAgent, "USER_AGENT")
	overrideString(&cfg.Seed.DonorSitemapURL, "DONOR_SITEMAP_URL")
	overrideString(&cfg.Seed.TargetPathPrefix, "TARGET_PATH_PREFIX")
	overrideString(&cfg.Site.GAMeasurementID, "GA_MEASUREMENT_ID")
	overrideInt(&cfg.Fetch.IntervalMin, "FETCH_INTERVAL_MIN")
	overrideInt(&cfg.Fetch.MaxArticles, "MAX_ARTICLES")
	overrideInt(&cfg.Seed.MaxArticles, "MAX_ARTICLES_TO_SEED")
	overrideInt(&cfg.Site.ArticlesPerPage, "ARTICLES_PER_PAGE")

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// GetServerAddress 获取服务器监听地址
func (c *Config) GetServerAddress() string {
	// 如果端口是纯数字,加上冒号前缀
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}
