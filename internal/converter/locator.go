package converter

import (
	"os"
	"runtime"
)

// darwinPath is the well-known bundle-relative executable on macOS
const darwinPath = "/Applications/LibreOffice.app/Contents/MacOS/soffice"

// windowsInstallPaths are probed in order; the first existing one wins
var windowsInstallPaths = []string{
	`C:\Program Files\LibreOffice\program\soffice.exe`,
	`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
}

// Resolve returns the platform-specific command used to invoke LibreOffice.
// It never fails: an unresolvable location is only discovered later when
// invocation fails. Safe to call repeatedly.
func Resolve() string {
	return resolveFor(runtime.GOOS, fileExists)
}

func resolveFor(goos string, exists func(string) bool) string {
	switch goos {
	case "darwin":
		return darwinPath
	case "windows":
		for _, path := range windowsInstallPaths {
			if exists(path) {
				return path
			}
		}
		// Fall back to PATH lookup
		return "soffice.exe"
	default:
		return "soffice"
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
