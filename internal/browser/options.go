package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Options configure one browser launch.
type Options struct {
	// ExecutablePath is empty to use the Chromium managed by Playwright.
	ExecutablePath      string
	Headless            bool
	WindowWidth         int
	WindowHeight        int
	RemoteDebuggingPort int
	// LockPath is the file lock guarding RemoteDebuggingPort.
	LockPath        string
	SlowMo          time.Duration
	PageLoadTimeout time.Duration
	// ScreenshotDir is where failed loads are captured. Empty disables it.
	ScreenshotDir string
}

// LaunchFlags returns the extra Chromium flags. Windows gets none.
func LaunchFlags(goos string, o Options) []string {
	if strings.HasPrefix(goos, "windows") {
		return nil
	}

	var flags []string
	if o.Headless {
		flags = append(flags, "--headless")
	}
	flags = append(flags,
		"--no-sandbox",
		"--disable-dev-shm-usage",
		"--disable-gpu",
		fmt.Sprintf("--window-size=%d,%d", o.WindowWidth, o.WindowHeight),
	)
	if o.RemoteDebuggingPort > 0 {
		flags = append(flags, fmt.Sprintf("--remote-debugging-port=%d", o.RemoteDebuggingPort))
	}
	return flags
}

// LaunchOptions maps Options onto the Playwright launch options.
func LaunchOptions(goos string, o Options) playwright.BrowserTypeLaunchOptions {
	lo := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(o.Headless),
		Args:     LaunchFlags(goos, o),
	}
	if o.ExecutablePath != "" {
		lo.ExecutablePath = playwright.String(o.ExecutablePath)
	}
	if o.PageLoadTimeout > 0 {
		lo.Timeout = playwright.Float(float64(o.PageLoadTimeout.Milliseconds()))
	}
	return lo
}

func usesDebugPort(goos string, o Options) bool {
	return !strings.HasPrefix(goos, "windows") && o.RemoteDebuggingPort > 0
}
