package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateUpload checks a file locally before any upload request is issued:
// it must exist, be a regular file, and carry a .pdf extension.
func ValidateUpload(path string) error {
	if path == "" {
		return fmt.Errorf("no file selected")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return fmt.Errorf("unsupported file type: %s (only PDF is supported)", filepath.Ext(path))
	}
	return nil
}

// SanitizeFilename replaces characters the backend's storage layer rejects.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// HumanSize renders a byte count the way the library listing shows it.
func HumanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
