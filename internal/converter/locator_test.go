package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFor(t *testing.T) {
	never := func(string) bool { return false }

	t.Run("darwin uses the bundle path", func(t *testing.T) {
		assert.Equal(t, darwinPath, resolveFor("darwin", never))
	})

	t.Run("unix-like relies on PATH", func(t *testing.T) {
		assert.Equal(t, "soffice", resolveFor("linux", never))
		assert.Equal(t, "soffice", resolveFor("freebsd", never))
	})

	t.Run("windows picks the first existing install", func(t *testing.T) {
		got := resolveFor("windows", func(path string) bool {
			return path == windowsInstallPaths[1]
		})
		assert.Equal(t, windowsInstallPaths[1], got)
	})

	t.Run("windows prefers earlier install paths", func(t *testing.T) {
		got := resolveFor("windows", func(string) bool { return true })
		assert.Equal(t, windowsInstallPaths[0], got)
	})

	t.Run("windows falls back to PATH", func(t *testing.T) {
		assert.Equal(t, "soffice.exe", resolveFor("windows", never))
	})
}

func TestResolveIsIdempotent(t *testing.T) {
	assert.Equal(t, Resolve(), Resolve())
}
