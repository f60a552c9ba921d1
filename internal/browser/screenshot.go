package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotPath names a capture as <dir>/<name>_<timestamp>.png.
func ScreenshotPath(dir, name string, at time.Time) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, at.Format("2006-01-02_15-04-05")))
}

// CaptureScreenshot writes a full-page PNG of page into dir and returns its path.
func CaptureScreenshot(page playwright.Page, dir, name string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := ScreenshotPath(dir, name, at)
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", path, err)
	}
	return path, nil
}
