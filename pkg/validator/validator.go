package validator

import (
	"fmt"
	"mime"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxFileNameLen    = 255
	maxContentTypeLen = 255
	maxFolderPathLen  = 1024
	maxRecipients     = 50
	minExpiryMinutes  = 1
	maxExpiryMinutes  = 1440
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlFmt      = "file name cannot contain control characters"
	errContentTypeEmptyFmt     = "content type cannot be empty"
	errContentTypeMaxLenFmt    = "content type must not exceed %d characters"
	errContentTypeInvalidFmt   = "invalid content type"
	errFolderPathMaxLengthFmt  = "folder path must not exceed %d characters"
	errFolderPathBackslashFmt  = "folder path cannot contain backslashes"
	errFolderPathEmptySegFmt   = "folder path contains empty segment"
	errFolderPathTraversalFmt  = "folder path cannot contain path traversal"
	errFolderPathControlFmt    = "folder path cannot contain control characters"
	errRecipientsEmptyFmt      = "at least one recipient is required"
	errRecipientsMaxFmt        = "recipients must not exceed %d"
	errRecipientInvalidFmt     = "invalid recipient email: %s"
	errRecipientDuplicateFmt   = "duplicate recipient email: %s"
	errExpiryMinutesRangeFmt   = "expiry duration must be between %d and %d minutes"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFileNameControlFmt)
		}
	}

	return nil
}

// SanitizeContentType parses and normalizes a MIME content type, rejecting
// anything that would let a caller inject headers into the presigned request.
func SanitizeContentType(contentType string) (string, error) {
	if contentType == "" {
		return "", fmt.Errorf(errContentTypeEmptyFmt)
	}

	if len(contentType) > maxContentTypeLen {
		return "", fmt.Errorf(errContentTypeMaxLenFmt, maxContentTypeLen)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf(errContentTypeInvalidFmt)
	}

	return mime.FormatMediaType(mediaType, params), nil
}

func FolderPath(path string) error {
	if path == "" {
		return nil
	}

	if len(path) > maxFolderPathLen {
		return fmt.Errorf(errFolderPathMaxLengthFmt, maxFolderPathLen)
	}

	if strings.Contains(path, "\\") {
		return fmt.Errorf(errFolderPathBackslashFmt)
	}

	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			return fmt.Errorf(errFolderPathEmptySegFmt)
		}
		if segment == "." || segment == ".." {
			return fmt.Errorf(errFolderPathTraversalFmt)
		}
		for _, char := range segment {
			if char < asciiControlStart || char == asciiDelete {
				return fmt.Errorf(errFolderPathControlFmt)
			}
		}
	}

	return nil
}

// Recipients validates the recipient email set: non-empty, bounded, every
// entry a well-formed email, no duplicates after lowercasing.
func Recipients(emails []string) error {
	if len(emails) == 0 {
		return fmt.Errorf(errRecipientsEmptyFmt)
	}

	if len(emails) > maxRecipients {
		return fmt.Errorf(errRecipientsMaxFmt, maxRecipients)
	}

	seen := make(map[string]bool, len(emails))
	for _, email := range emails {
		if err := Email(email); err != nil {
			return fmt.Errorf(errRecipientInvalidFmt, email)
		}
		normalized := strings.ToLower(email)
		if seen[normalized] {
			return fmt.Errorf(errRecipientDuplicateFmt, email)
		}
		seen[normalized] = true
	}

	return nil
}

func ExpiryMinutes(minutes int) error {
	if minutes < minExpiryMinutes || minutes > maxExpiryMinutes {
		return fmt.Errorf(errExpiryMinutesRangeFmt, minExpiryMinutes, maxExpiryMinutes)
	}

	return nil
}
