package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// SearchSegment is one base filter URL paginated across listing pages.
// LastPage is exclusive.
type SearchSegment struct {
	Name      string `yaml:"name"`
	BaseURL   string `yaml:"base_url"`
	FirstPage int    `yaml:"first_page"`
	LastPage  int    `yaml:"last_page"`
}

type Config struct {
	Segments       []SearchSegment
	MaxWorkers     int
	RequestTimeout time.Duration
	StageDelay     time.Duration
	MinDelay       time.Duration
	MaxDelay       time.Duration
	UserAgent      string
	URLCSVPath     string
	DetailCSVPath  string
	CleanedCSVPath string
	LogDir         string
	LogLevel       string
	EnableDB       bool
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
}

// The site rejects requests without a plausible desktop browser identity.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"

func DefaultConfig() *Config {
	return &Config{
		Segments: []SearchSegment{
			{
				Name:      "construction-1950-1999",
				BaseURL:   "https://www.immoweb.be/en/search/house-and-apartment/for-sale?countries=BE&minConstructionYear=1950&maxConstructionYear=1999",
				FirstPage: 1,
				LastPage:  334,
			},
			{
				Name:      "construction-2000-plus",
				BaseURL:   "https://www.immoweb.be/en/search/house-and-apartment/for-sale?countries=BE&minConstructionYear=2000",
				FirstPage: 1,
				LastPage:  334,
			},
		},
		MaxWorkers:     10,
		RequestTimeout: 30 * time.Second,
		StageDelay:     30 * time.Second,
		UserAgent:      defaultUserAgent,
		URLCSVPath:     "output/property_links.csv",
		DetailCSVPath:  "output/all_properties.csv",
		CleanedCSVPath: "output/cleaned_dataset.csv",
		LogDir:         "logs",
		LogLevel:       "info",
		EnableDB:       false,
		DBHost:         "localhost",
		DBPort:         5432,
		DBUser:         "postgres",
		DBPassword:     "postgres",
		DBName:         "immoweb_scraper",
		DBSSLMode:      "disable",
	}
}

// fileConfig mirrors config.yaml; zero values keep the default.
type fileConfig struct {
	Segments              []SearchSegment `yaml:"segments"`
	MaxWorkers            int             `yaml:"max_workers"`
	RequestTimeoutSeconds int             `yaml:"request_timeout_seconds"`
	StageDelaySeconds     int             `yaml:"stage_delay_seconds"`
	MinDelayMillis        int             `yaml:"min_delay_ms"`
	MaxDelayMillis        int             `yaml:"max_delay_ms"`
	UserAgent             string          `yaml:"user_agent"`
	URLCSVPath            string          `yaml:"url_csv_path"`
	DetailCSVPath         string          `yaml:"detail_csv_path"`
	CleanedCSVPath        string          `yaml:"cleaned_csv_path"`
	LogDir                string          `yaml:"log_dir"`
	LogLevel              string          `yaml:"log_level"`
	Database              struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		User    string `yaml:"user"`
		Name    string `yaml:"name"`
		SSLMode string `yaml:"sslmode"`
	} `yaml:"database"`
}

// Load builds the config from defaults, an optional config.yaml overlay and
// a .env file for database credentials.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	if data, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", path, err)
		}
		cfg.apply(&fc)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DBPassword = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DBUser = v
	}

	return cfg, nil
}

func (c *Config) apply(fc *fileConfig) {
	if len(fc.Segments) > 0 {
		c.Segments = fc.Segments
	}
	if fc.MaxWorkers > 0 {
		c.MaxWorkers = fc.MaxWorkers
	}
	if fc.RequestTimeoutSeconds > 0 {
		c.RequestTimeout = time.Duration(fc.RequestTimeoutSeconds) * time.Second
	}
	if fc.StageDelaySeconds > 0 {
		c.StageDelay = time.Duration(fc.StageDelaySeconds) * time.Second
	}
	if fc.MinDelayMillis > 0 {
		c.MinDelay = time.Duration(fc.MinDelayMillis) * time.Millisecond
	}
	if fc.MaxDelayMillis > 0 {
		c.MaxDelay = time.Duration(fc.MaxDelayMillis) * time.Millisecond
	}
	if fc.UserAgent != "" {
		c.UserAgent = fc.UserAgent
	}
	if fc.URLCSVPath != "" {
		c.URLCSVPath = fc.URLCSVPath
	}
	if fc.DetailCSVPath != "" {
		c.DetailCSVPath = fc.DetailCSVPath
	}
	if fc.CleanedCSVPath != "" {
		c.CleanedCSVPath = fc.CleanedCSVPath
	}
	if fc.LogDir != "" {
		c.LogDir = fc.LogDir
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	c.EnableDB = fc.Database.Enabled
	if fc.Database.Host != "" {
		c.DBHost = fc.Database.Host
	}
	if fc.Database.Port > 0 {
		c.DBPort = fc.Database.Port
	}
	if fc.Database.User != "" {
		c.DBUser = fc.Database.User
	}
	if fc.Database.Name != "" {
		c.DBName = fc.Database.Name
	}
	if fc.Database.SSLMode != "" {
		c.DBSSLMode = fc.Database.SSLMode
	}
}
