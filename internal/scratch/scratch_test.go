package scratch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDir(t *testing.T) (*Dir, afero.Fs) {
	t.Helper()
	memFs := afero.NewMemMapFs()
	d, err := New(Config{
		Root:       "/scratch",
		FileSystem: NewAferoFileSystem(memFs),
	})
	require.NoError(t, err)
	return d, memFs
}

func TestNew_DefaultsToTempNamespace(t *testing.T) {
	d, err := New(Config{FileSystem: NewAferoFileSystem(afero.NewMemMapFs())})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultNamespace), d.Root())
}

func TestEnsure_IsIdempotent(t *testing.T) {
	d, _ := newTestDir(t)
	require.NoError(t, d.Ensure())
	require.NoError(t, d.Ensure())
	assert.True(t, d.IsAccessible())
}

func TestIsAccessible_FalseWhenRemoved(t *testing.T) {
	d, memFs := newTestDir(t)
	require.NoError(t, memFs.RemoveAll("/scratch"))
	assert.False(t, d.IsAccessible())
}

func TestBasename(t *testing.T) {
	tests := []struct {
		source string
		base   string
	}{
		{"/docs/deck.pptx", "deck"},
		{"/docs/deck.PPT", "deck"},
		{"deck.ppt", "deck"},
		{"/a/b/annual.report.pptx", "annual.report"},
		{"/docs/noext", "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.base, Basename(tt.source))
		})
	}
}

func TestPDFPath_IsDeterministic(t *testing.T) {
	d, _ := newTestDir(t)

	assert.Equal(t, "/scratch/deck.pdf", d.PDFPath("/docs/deck.pptx"))
	assert.Equal(t, d.PDFPath("/docs/deck.pptx"), d.PDFPath("/docs/deck.pptx"))

	// Directory identity is not part of the cache key
	assert.Equal(t, d.PDFPath("/docs/deck.pptx"), d.PDFPath("/other/deck.pptx"))
}

func TestIsFresh(t *testing.T) {
	d, memFs := newTestDir(t)

	source := "/docs/deck.pptx"
	output := "/scratch/deck.pdf"
	base := time.Now().Add(-time.Hour)

	require.NoError(t, afero.WriteFile(memFs, source, []byte("src"), 0644))
	require.NoError(t, afero.WriteFile(memFs, output, []byte("pdf"), 0644))

	t.Run("fresh when output strictly newer", func(t *testing.T) {
		require.NoError(t, memFs.Chtimes(source, base, base))
		require.NoError(t, memFs.Chtimes(output, base.Add(time.Second), base.Add(time.Second)))
		assert.True(t, d.IsFresh(output, source))
	})

	t.Run("stale when output older", func(t *testing.T) {
		require.NoError(t, memFs.Chtimes(output, base.Add(-time.Second), base.Add(-time.Second)))
		assert.False(t, d.IsFresh(output, source))
	})

	t.Run("stale when timestamps equal", func(t *testing.T) {
		require.NoError(t, memFs.Chtimes(output, base, base))
		assert.False(t, d.IsFresh(output, source))
	})

	t.Run("stale when output missing", func(t *testing.T) {
		assert.False(t, d.IsFresh("/scratch/absent.pdf", source))
	})

	t.Run("stale when source missing", func(t *testing.T) {
		assert.False(t, d.IsFresh(output, "/docs/absent.pptx"))
	})
}

func TestListImages_FiltersAndSorts(t *testing.T) {
	d, memFs := newTestDir(t)

	for _, name := range []string{"deck03.png", "deck01.png", "deck02.png", "other01.png", "deck.pdf"} {
		require.NoError(t, afero.WriteFile(memFs, filepath.Join("/scratch", name), []byte(name), 0644))
	}

	images, err := d.ListImages("/docs/deck.pptx", ".png")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/scratch/deck01.png",
		"/scratch/deck02.png",
		"/scratch/deck03.png",
	}, images)
}

func TestListImages_EmptyWhenNoneMatch(t *testing.T) {
	d, _ := newTestDir(t)
	images, err := d.ListImages("/docs/deck.pptx", ".png")
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestRemoveImages(t *testing.T) {
	d, memFs := newTestDir(t)

	for _, name := range []string{"deck01.png", "deck02.png", "other01.png"} {
		require.NoError(t, afero.WriteFile(memFs, filepath.Join("/scratch", name), []byte(name), 0644))
	}

	require.NoError(t, d.RemoveImages("/docs/deck.pptx", ".png"))

	remaining, err := d.ListImages("/docs/deck.pptx", ".png")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Unrelated files are untouched
	exists, err := afero.Exists(memFs, "/scratch/other01.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestArtifact(t *testing.T) {
	d, memFs := newTestDir(t)
	require.NoError(t, afero.WriteFile(memFs, "/scratch/deck.pdf", []byte("pdf"), 0644))

	t.Run("reads by bare name", func(t *testing.T) {
		data, err := d.Artifact("deck.pdf")
		require.NoError(t, err)
		assert.Equal(t, []byte("pdf"), data)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		_, err := d.Artifact("../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("rejects nested paths", func(t *testing.T) {
		_, err := d.Artifact("sub/deck.pdf")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := d.Artifact("")
		assert.Error(t, err)
	})

	t.Run("missing artifact errors", func(t *testing.T) {
		_, err := d.Artifact("absent.pdf")
		var scratchErr *Error
		assert.ErrorAs(t, err, &scratchErr)
	})
}
