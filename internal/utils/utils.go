package utils

import (
	"path/filepath"
	"strings"
)

// DetermineLanguage provides a fallback language tag when the LLM doesn't
// specify one. The tag is only used for icon and syntax-hint lookup in the
// code browser.
func DetermineLanguage(filename string) string {
	lowerFilename := strings.ToLower(filename)
	ext := filepath.Ext(lowerFilename)
	switch ext {
	case ".html":
		return "html"
	case ".css":
		return "css"
	case ".js":
		return "javascript"
	case ".jsx":
		return "jsx"
	case ".ts":
		return "typescript"
	case ".tsx":
		return "tsx"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	case ".txt":
		return "text"
	case ".yaml", ".yml":
		return "yaml"
	case ".svg":
		return "svg"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "image"
	default:
		base := filepath.Base(lowerFilename)
		if strings.Contains(base, "package.json") || strings.Contains(base, "tsconfig.json") {
			return "json"
		}
		return "text"
	}
}
