package browser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScreenshotPath(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	got := ScreenshotPath("shots", "status_429", at)
	assert.Equal(t, filepath.Join("shots", "status_429_2024-03-09_14-05-07.png"), got)
}

func TestScreenshotPath_SanitizesName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	got := ScreenshotPath("", "job/view?id=1", at)
	assert.Equal(t, "job_view_id_1_2024-03-09_14-05-07.png", got)
}
