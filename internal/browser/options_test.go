package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{
		Headless:            true,
		WindowWidth:         1920,
		WindowHeight:        1080,
		RemoteDebuggingPort: 9222,
		PageLoadTimeout:     40 * time.Second,
	}
}

func TestLaunchFlags_Linux(t *testing.T) {
	assert.Equal(t, []string{
		"--headless",
		"--no-sandbox",
		"--disable-dev-shm-usage",
		"--disable-gpu",
		"--window-size=1920,1080",
		"--remote-debugging-port=9222",
	}, LaunchFlags("linux", defaultOptions()))
}

func TestLaunchFlags_Windows(t *testing.T) {
	assert.Nil(t, LaunchFlags("windows", defaultOptions()))
}

func TestLaunchFlags_Headful(t *testing.T) {
	o := defaultOptions()
	o.Headless = false
	o.RemoteDebuggingPort = 0

	flags := LaunchFlags("darwin", o)
	assert.NotContains(t, flags, "--headless")
	for _, f := range flags {
		assert.NotContains(t, f, "remote-debugging-port")
	}
}

func TestLaunchOptions(t *testing.T) {
	o := defaultOptions()
	o.ExecutablePath = "/opt/chrome"

	lo := LaunchOptions("linux", o)
	require.NotNil(t, lo.Headless)
	assert.True(t, *lo.Headless)
	require.NotNil(t, lo.ExecutablePath)
	assert.Equal(t, "/opt/chrome", *lo.ExecutablePath)
	require.NotNil(t, lo.Timeout)
	assert.Equal(t, float64(40000), *lo.Timeout)
	assert.Len(t, lo.Args, 6)

	o.ExecutablePath = ""
	assert.Nil(t, LaunchOptions("linux", o).ExecutablePath)
}

func TestUsesDebugPort(t *testing.T) {
	assert.True(t, usesDebugPort("linux", defaultOptions()))
	assert.False(t, usesDebugPort("windows", defaultOptions()))
	o := defaultOptions()
	o.RemoteDebuggingPort = 0
	assert.False(t, usesDebugPort("linux", o))
}
