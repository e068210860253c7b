package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_TruncatesLongStderr(t *testing.T) {
	err := &ExitError{Code: 1, Stderr: strings.Repeat("x", 2000)}

	msg := err.Error()
	assert.Contains(t, msg, "code 1")
	assert.Contains(t, msg, "...")
	assert.Less(t, len(msg), 600)
}

func TestExitError_OmitsEmptyStderr(t *testing.T) {
	err := &ExitError{Code: 77}
	assert.NotContains(t, err.Error(), "stderr")
}

func TestNotInstalledError_MentionsInstallPage(t *testing.T) {
	err := &NotInstalledError{Path: "soffice"}
	assert.Contains(t, err.Error(), "libreoffice.org")
	assert.Contains(t, err.Error(), "soffice")
}
