// Resolve the browser executable next to the working directory
// Make sure it can be executed on non-Windows platforms

package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrDriverNotFound = errors.New("browser executable not found")

// Name is the executable file name for the given GOOS.
func Name(goos string) string {
	if isWindows(goos) {
		return "chrome.exe"
	}
	return "chrome"
}

// Locate returns the fixed path of the browser executable inside dir.
func Locate(dir, goos string) string {
	return filepath.Join(dir, Name(goos))
}

// EnsureExecutable adds the owner execute bit when it is missing.
// Windows has no execute bit, so only existence is checked there.
func EnsureExecutable(path, goos string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDriverNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrDriverNotFound, path)
	}
	if isWindows(goos) {
		return nil
	}

	mode := info.Mode()
	if mode&0o100 != 0 {
		return nil
	}
	if err := os.Chmod(path, mode|0o100); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// Resolve picks the executable to launch. An explicit override wins over the
// default location in dir. When nothing usable exists and useBundled is set,
// Resolve returns "" so the caller launches the browser managed by Playwright.
func Resolve(override, dir, goos string, useBundled bool) (string, error) {
	path := override
	if path == "" {
		path = Locate(dir, goos)
	}

	err := EnsureExecutable(path, goos)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, ErrDriverNotFound) && override == "" && useBundled:
		return "", nil
	default:
		return "", err
	}
}

func isWindows(goos string) bool {
	return strings.HasPrefix(goos, "windows")
}
