package utils

import (
	"path/filepath"
	"strings"
)

// CleanFilename turns "01_some-song.mp3" into "01 some song".
func CleanFilename(filename string) string {
	ext := filepath.Ext(filename)
	clean := strings.TrimSuffix(filepath.Base(filename), ext)
	clean = strings.ReplaceAll(clean, "_", " ")
	clean = strings.ReplaceAll(clean, "-", " ")
	return strings.Join(strings.Fields(clean), " ")
}

// TrimLine strips the line terminator left by a line reader.
func TrimLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// Default returns def when text is blank.
func Default(text, def string) string {
	if strings.TrimSpace(text) == "" {
		return def
	}
	return strings.TrimSpace(text)
}
