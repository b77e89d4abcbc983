package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("bob@example.com"))
	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("@example.com"))
}

func TestFileName(t *testing.T) {
	assert.NoError(t, FileName("report.pdf"))
	assert.Error(t, FileName(""))
	assert.Error(t, FileName("../etc/passwd"))
	assert.Error(t, FileName("a/b.txt"))
	assert.Error(t, FileName("bad\x00name"))
}

func TestSanitizeContentType(t *testing.T) {
	ct, err := SanitizeContentType("text/plain")
	assert.NoError(t, err)
	assert.Equal(t, "text/plain", ct)

	ct, err = SanitizeContentType("Text/Plain; charset=utf-8")
	assert.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", ct)

	_, err = SanitizeContentType("")
	assert.Error(t, err)

	_, err = SanitizeContentType("text/plain\r\nX-Injected: 1")
	assert.Error(t, err)
}

func TestFolderPath(t *testing.T) {
	assert.NoError(t, FolderPath(""))
	assert.NoError(t, FolderPath("uploads"))
	assert.NoError(t, FolderPath("uploads/2026/reports"))
	assert.Error(t, FolderPath("uploads//reports"))
	assert.Error(t, FolderPath("uploads/../secrets"))
	assert.Error(t, FolderPath("uploads\\reports"))
}

func TestRecipients(t *testing.T) {
	assert.NoError(t, Recipients([]string{"bob@example.com", "charlie@example.com"}))
	assert.Error(t, Recipients(nil))
	assert.Error(t, Recipients([]string{}))
	assert.Error(t, Recipients([]string{"bob@example.com", "nope"}))
	assert.Error(t, Recipients([]string{"bob@example.com", "BOB@example.com"}))
}

func TestExpiryMinutes(t *testing.T) {
	assert.NoError(t, ExpiryMinutes(1))
	assert.NoError(t, ExpiryMinutes(1440))
	assert.Error(t, ExpiryMinutes(0))
	assert.Error(t, ExpiryMinutes(-5))
	assert.Error(t, ExpiryMinutes(1441))
}
