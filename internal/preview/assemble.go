// Package preview stitches a parsed project's HTML/CSS/JS files into one
// self-contained document suitable for sandboxed iframe rendering.
package preview

import (
	"fmt"
	"strings"

	"ice_ai_server/internal/types"
)

// Assemble inlines matching CSS and JS files into the project's HTML file and
// returns a single renderable document. This is pure text substitution; no
// JSON re-encoding happens here.
//
// If the project has no HTML file, the first file's content is returned
// verbatim as a best-effort single-blob preview.
func Assemble(p *types.GeneratedProject) string {
	if p == nil || len(p.Files) == 0 {
		return ""
	}

	var htmlFile, cssFile *types.GeneratedFile
	var jsFiles []types.GeneratedFile
	for i := range p.Files {
		f := &p.Files[i]
		switch {
		case htmlFile == nil && strings.HasSuffix(f.Filename, ".html"):
			htmlFile = f
		case cssFile == nil && strings.HasSuffix(f.Filename, ".css"):
			cssFile = f
		case strings.HasSuffix(f.Filename, ".js"):
			jsFiles = append(jsFiles, *f)
		}
	}

	if htmlFile == nil {
		return p.Files[0].Content
	}

	html := htmlFile.Content

	// Inline CSS: swap the stylesheet link for a style block, tolerating both
	// quoted and unquoted href forms. Only the first CSS file is considered.
	if cssFile != nil {
		styleTag := fmt.Sprintf("<style>\n%s\n</style>", cssFile.Content)
		html = strings.Replace(html, fmt.Sprintf(`<link rel="stylesheet" href="%s">`, cssFile.Filename), styleTag, 1)
		html = strings.Replace(html, fmt.Sprintf(`<link rel="stylesheet" href=%s>`, cssFile.Filename), styleTag, 1)
		if !strings.Contains(html, "<style>") {
			html = strings.Replace(html, "</head>", styleTag+"\n</head>", 1)
		}
	}

	// Inline JS: swap each script src reference for an inline script block.
	for _, jsFile := range jsFiles {
		scriptTag := fmt.Sprintf("<script>\n%s\n</script>", jsFile.Content)
		html = strings.Replace(html, fmt.Sprintf(`<script src="%s"></script>`, jsFile.Filename), scriptTag, 1)
		html = strings.Replace(html, fmt.Sprintf(`<script src=%s></script>`, jsFile.Filename), scriptTag, 1)
	}

	// If no script got inlined via replacement, append all JS before </body>.
	if len(jsFiles) > 0 && !strings.Contains(html, "<script>") {
		contents := make([]string, 0, len(jsFiles))
		for _, jsFile := range jsFiles {
			contents = append(contents, jsFile.Content)
		}
		combined := fmt.Sprintf("<script>\n%s\n</script>", strings.Join(contents, "\n\n"))
		html = strings.Replace(html, "</body>", combined+"\n</body>", 1)
	}

	return html
}
