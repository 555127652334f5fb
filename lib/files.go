package lib

import (
	"path/filepath"
	"strings"
	"time"
)

var allowedProofExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".pdf":  {},
}

// AllowedProofExtensions lists the accepted extensions without their dots,
// for error messages.
func AllowedProofExtensions() []string {
	return []string{"png", "jpg", "jpeg", "gif", "pdf"}
}

// AllowedProofFile reports whether the filename carries an accepted
// payment-proof extension, case-insensitively.
func AllowedProofFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedProofExtensions[ext]
	return ok
}

// SanitizeFilename strips directory components and any character outside
// [A-Za-z0-9._-] so the result is safe to join onto the upload directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}

	cleaned := strings.TrimLeft(sb.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// TimestampedFilename builds the stored blob name: a timestamp prefix keeps
// concurrent uploads of identically named files from colliding.
func TimestampedFilename(original string, now time.Time) string {
	return now.Format("20060102_150405") + "_" + SanitizeFilename(original)
}
