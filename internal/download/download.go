// Package download saves remote media files to local storage.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Downloader struct {
	dir  string
	http *http.Client
}

func NewDownloader(dir string, httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Downloader{dir: dir, http: httpClient}
}

// Save fetches rawURL into the download directory under filename,
// inferring the extension from the URL path when the filename carries
// none. It returns the path of the written file.
func (d *Downloader) Save(ctx context.Context, rawURL, filename string) (string, error) {
	if filename == "" {
		filename = "reddit_media"
	}
	target := filepath.Join(d.dir, sanitizeFilename(filename))
	if filepath.Ext(target) == "" {
		if ext := urlExtension(rawURL); ext != "" {
			target += ext
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create download file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return "", fmt.Errorf("write download file: %w", err)
	}

	log.Debug().Str("url", rawURL).Str("path", target).Int64("bytes", written).Msg("saved media file")
	return target, nil
}

func urlExtension(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Ext(parsed.Path)
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	cleaned := replacer.Replace(name)
	return strings.TrimSpace(cleaned)
}
