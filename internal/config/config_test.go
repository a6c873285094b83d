package config

import "testing"

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("GRIDDIT_API_BASE_URL", "")
	t.Setenv("GRIDDIT_DB_PATH", "")
	t.Setenv("GRIDDIT_DOWNLOAD_DIR", "")
	t.Setenv("GRIDDIT_TARGET", "")
	t.Setenv("GRIDDIT_SORT", "")
	t.Setenv("GRIDDIT_LOG_LEVEL", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://www.reddit.com" {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}
	if cfg.DBPath != "griddit.db" {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.DownloadDir != "." {
		t.Fatalf("unexpected download dir: %s", cfg.DownloadDir)
	}
	if cfg.Sort != "hot" {
		t.Fatalf("unexpected sort: %s", cfg.Sort)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("GRIDDIT_API_BASE_URL", "http://localhost:8080")
	t.Setenv("GRIDDIT_DB_PATH", "/tmp/test.db")
	t.Setenv("GRIDDIT_TARGET", "r/pics")
	t.Setenv("GRIDDIT_SORT", "top")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}
	if cfg.Target != "r/pics" {
		t.Fatalf("unexpected target: %s", cfg.Target)
	}
	if cfg.Sort != "top" {
		t.Fatalf("unexpected sort: %s", cfg.Sort)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{APIBaseURL: "https://www.reddit.com", DBPath: "x.db", Sort: "hot"}, false},
		{"trailing slash", Config{APIBaseURL: "https://www.reddit.com/", DBPath: "x.db", Sort: "hot"}, true},
		{"missing db path", Config{APIBaseURL: "https://www.reddit.com", Sort: "hot"}, true},
		{"bad sort", Config{APIBaseURL: "https://www.reddit.com", DBPath: "x.db", Sort: "controversial"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
