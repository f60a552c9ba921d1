package browser

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go-linkedin-job-scraper/internal/logging"

	"github.com/gofrs/flock"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/time/rate"
)

const lockWait = 5 * time.Second

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

var ErrPortBusy = errors.New("remote debugging port is held by another scraper")

// PlaywrightManager owns one Chromium process and hands out pages from a
// single browser context.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	lock    *flock.Flock

	opts    Options
	limiter *rate.Limiter
	log     *logging.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewPlaywright starts the Playwright driver and launches Chromium.
func NewPlaywright(ctx context.Context, opts Options, log *logging.Logger) (*PlaywrightManager, error) {
	pm := &PlaywrightManager{
		opts:    opts,
		limiter: newPacer(opts.SlowMo),
		log:     log,
	}

	if usesDebugPort(runtime.GOOS, opts) && opts.LockPath != "" {
		pm.lock = flock.New(opts.LockPath)
		lockCtx, cancel := context.WithTimeout(ctx, lockWait)
		locked, err := pm.lock.TryLockContext(lockCtx, 250*time.Millisecond)
		cancel()
		if !locked {
			if err == nil || errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrPortBusy, opts.LockPath)
			}
			return nil, fmt.Errorf("lock %s: %w", opts.LockPath, err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		pm.unlock()
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	pm.pw = pw

	launch := LaunchOptions(runtime.GOOS, opts)
	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		pm.unlock()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}
	pm.browser = browser

	bctx, err := pm.NewContext()
	if err != nil {
		_ = pm.Close()
		return nil, err
	}
	pm.bctx = bctx

	log.Info("browser launched",
		"executable", executableLabel(opts.ExecutablePath),
		"headless", opts.Headless,
		"args", launch.Args,
	)
	return pm, nil
}

// NewContext creates an isolated browser context with the configured viewport.
func (pm *PlaywrightManager) NewContext() (playwright.BrowserContext, error) {
	bctx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport: &playwright.Size{
			Width:  pm.opts.WindowWidth,
			Height: pm.opts.WindowHeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if pm.opts.PageLoadTimeout > 0 {
		bctx.SetDefaultNavigationTimeout(float64(pm.opts.PageLoadTimeout.Milliseconds()))
	}
	return bctx, nil
}

// Fetch opens url in a fresh tab, scrolls it like a reader would and returns
// the rendered HTML. The tab is always closed.
func (pm *PlaywrightManager) Fetch(ctx context.Context, url string) (string, error) {
	if err := pm.limiter.Wait(ctx); err != nil {
		return "", err
	}

	page, err := pm.bctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("could not create page: %w", err)
	}
	defer page.Close()

	resp, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(pm.opts.PageLoadTimeout.Milliseconds())),
	})
	if err != nil {
		pm.capture(page, "navigate")
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if resp != nil && resp.Status() >= 400 {
		pm.capture(page, fmt.Sprintf("status_%d", resp.Status()))
		return "", fmt.Errorf("navigate %s: status %d", url, resp.Status())
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if err := HumanScroll(ctx, page); err != nil {
		pm.log.Debug("scroll failed", "url", url, "err", err)
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("read content of %s: %w", url, err)
	}
	return html, nil
}

// Close shuts down the browser and the Playwright driver and releases the
// debug port lock. Safe to call more than once.
func (pm *PlaywrightManager) Close() error {
	pm.closeOnce.Do(func() {
		var errs []error
		if pm.bctx != nil {
			errs = append(errs, pm.bctx.Close())
		}
		if pm.browser != nil {
			errs = append(errs, pm.browser.Close())
		}
		if pm.pw != nil {
			errs = append(errs, pm.pw.Stop())
		}
		pm.unlock()
		pm.closeErr = errors.Join(errs...)
	})
	return pm.closeErr
}

func (pm *PlaywrightManager) capture(page playwright.Page, name string) {
	if pm.opts.ScreenshotDir == "" {
		return
	}
	path, err := CaptureScreenshot(page, pm.opts.ScreenshotDir, name, time.Now())
	if err != nil {
		pm.log.Warn("failed to capture screenshot", "err", err)
		return
	}
	pm.log.Info("screenshot saved", "path", path, "url", page.URL())
}

func (pm *PlaywrightManager) unlock() {
	if pm.lock == nil {
		return
	}
	if err := pm.lock.Unlock(); err != nil {
		pm.log.Warn("failed to release debug port lock", "path", pm.opts.LockPath, "err", err)
	}
}

// newPacer spaces page loads by at least slowMo. Zero disables pacing.
func newPacer(slowMo time.Duration) *rate.Limiter {
	if slowMo <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(slowMo), 1)
}

func executableLabel(path string) string {
	if path == "" {
		return "bundled"
	}
	return path
}
