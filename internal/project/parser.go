// Package project decodes raw LLM output into a GeneratedProject.
package project

import (
	"encoding/json"
	"log"

	"ice_ai_server/internal/sanitize"
	"ice_ai_server/internal/types"
	"ice_ai_server/internal/utils"
)

const fallbackDescription = "Generated website"

// Parse turns an arbitrary, possibly malformed text blob into a usable
// project. It never fails: when every decode attempt is exhausted it returns
// a single-file fallback project wrapping the original raw text, so the
// caller can always render something.
//
// Attempt order:
//  1. strip fences, extract the first JSON object, decode
//  2. escape raw control characters inside string literals, decode again
//  3. fallback single-file project
//
// A decoded project with an empty files array is routed to the fallback path
// as well; a project with zero files is never surfaced as successful.
func Parse(raw string) *types.GeneratedProject {
	candidate := sanitize.Clean(raw)

	if p, ok := decode(candidate); ok {
		return p
	}

	escaped := sanitize.EscapeControlChars(candidate)
	if p, ok := decode(escaped); ok {
		log.Println("Info: project JSON recovered via control-character escaping pass.")
		return p
	}

	log.Printf("Failed to parse LLM output as a project (%d bytes), returning fallback file.", len(raw))
	return Fallback(raw)
}

// decode attempts a structural decode and validates that a non-empty files
// array is present. Optional fields are passed through opaquely.
func decode(candidate string) (*types.GeneratedProject, bool) {
	var p types.GeneratedProject
	if err := json.Unmarshal([]byte(candidate), &p); err != nil {
		return nil, false
	}
	if len(p.Files) == 0 {
		return nil, false
	}
	for i := range p.Files {
		if p.Files[i].Language == "" {
			p.Files[i].Language = utils.DetermineLanguage(p.Files[i].Filename)
		}
	}
	return &p, true
}

// Fallback synthesizes a minimal one-file project from raw text. The content
// is the original text, unmodified.
func Fallback(raw string) *types.GeneratedProject {
	return &types.GeneratedProject{
		Files: []types.GeneratedFile{
			{
				Filename:    "index.html",
				Language:    "html",
				Content:     raw,
				Description: fallbackDescription,
			},
		},
	}
}
