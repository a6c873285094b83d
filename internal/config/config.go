package config

import (
	"fmt"
	"os"

	"github.com/glabrego/griddit/internal/reddit"
)

const defaultAPIBaseURL = "https://www.reddit.com"

// Config holds runtime settings for the viewer.
type Config struct {
	APIBaseURL  string
	DBPath      string
	DownloadDir string
	Target      string
	Sort        string
	LogLevel    string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL:  os.Getenv("GRIDDIT_API_BASE_URL"),
		DBPath:      os.Getenv("GRIDDIT_DB_PATH"),
		DownloadDir: os.Getenv("GRIDDIT_DOWNLOAD_DIR"),
		Target:      os.Getenv("GRIDDIT_TARGET"),
		Sort:        os.Getenv("GRIDDIT_SORT"),
		LogLevel:    os.Getenv("GRIDDIT_LOG_LEVEL"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "griddit.db"
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
	if cfg.Sort == "" {
		cfg.Sort = reddit.SortHot
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DBPath is required")
	}
	if !reddit.ValidSort(c.Sort) {
		return fmt.Errorf("Sort must be one of hot, new, top, rising: %s", c.Sort)
	}
	return nil
}
