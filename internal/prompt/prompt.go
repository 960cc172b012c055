// Package prompt expands a short user idea into a detailed website spec
// before it is sent to the LLM, and keeps the output contract strict:
// JSON only.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"ice_ai_server/config"
)

// BuildSystemPrompt keeps the system prompt strict and short so the model
// follows the JSON contract.
func BuildSystemPrompt() string {
	return strings.TrimSpace(`
You are a website generator.
You must output ONLY valid JSON with the exact schema requested by the user prompt.
No markdown. No explanations. No code fences.
All file contents must be JSON-escaped strings (use \n, \t, \", \\).
`)
}

// BuildUserPrompt returns the expanded prompt, or the user's text unchanged
// when enhancement is disabled or the prompt already reads like a full spec.
func BuildUserPrompt(cfg config.Config, userPrompt string) string {
	if !cfg.PromptEnhance {
		return userPrompt
	}
	if looksLikeAlreadyDetailed(userPrompt) {
		return userPrompt
	}
	return expandPrompt(userPrompt)
}

var detailedMarkers = regexp.MustCompile(`(?i)requirements\s*:|sections\s*:|tech\s*stack\s*:|must include\s*:`)

// looksLikeAlreadyDetailed avoids over-expanding prompts that are already a
// long spec.
func looksLikeAlreadyDetailed(p string) bool {
	p = strings.TrimSpace(p)
	return len(p) > 350 || detailedMarkers.MatchString(p)
}

// guessSiteType picks a site category so the expansion can tailor sections.
func guessSiteType(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "portfolio"):
		return "portfolio"
	case strings.Contains(p, "saas"), strings.Contains(p, "startup"):
		return "saas landing"
	case strings.Contains(p, "restaurant"), strings.Contains(p, "coffee"), strings.Contains(p, "cafe"):
		return "restaurant"
	case strings.Contains(p, "ecommerce"), strings.Contains(p, "shop"), strings.Contains(p, "store"):
		return "ecommerce"
	case strings.Contains(p, "blog"):
		return "blog"
	case strings.Contains(p, "agency"), strings.Contains(p, "studio"):
		return "agency"
	case strings.Contains(p, "event"), strings.Contains(p, "conference"):
		return "event"
	default:
		return "modern marketing site"
	}
}

func expandPrompt(userPrompt string) string {
	siteType := guessSiteType(userPrompt)

	pricingLine := `- Replace Pricing with a section appropriate to the idea (e.g., Services / Menu / Packages / Plans), still using 3-6 cards with strong visual design.`
	if siteType == "saas landing" {
		pricingLine = `- Pricing section: 3 tiers (Starter / Pro / Business), clearly designed cards, feature bullets, and one "Most Popular" highlight.`
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are generating a polished, production-quality website.

USER'S BASIC IDEA (keep the intent, improve everything):
"%s"

GOAL
Turn that into a premium %s that looks like a real high-end product, not a demo.

STYLE & QUALITY BAR (must follow)
- Modern UI with strong visual hierarchy, consistent spacing (8px grid), premium typography.
- Use believable copy (NO "lorem ipsum"). Create a brand name + tagline that fits.
- Responsive mobile-first layout; great desktop layout; no broken overflow.
- Add real UI polish: hover states, focus rings, active states, nice section transitions.
- Accessibility: semantic HTML, labels for inputs, aria where needed.

PAGE STRUCTURE (must include)
- Sticky navbar with brand + 4-6 links + primary CTA button
- Hero: headline, subheadline, CTA(s), plus a visual (mock cards / illustration layout / dashboard preview)
- Features: 6 items with icons
- Social proof: logos or metrics
- Testimonials: 3 (realistic names + roles)
%s
- FAQ: 6 questions
- Final CTA section
- Footer: multi-column links + legal links

CONTENT REQUIREMENTS
- Invent consistent brand voice, product/service names, and supporting details.
- Provide realistic numbers (stats, pricing, metrics) that fit the concept.
- Keep text concise, punchy, and consistent in tone.

TECHNICAL REQUIREMENTS
- Plain HTML, CSS, and JavaScript files that run directly in a browser.
- CSS variables for theming; smooth hover effects and transitions.
- No external network calls required. Avoid remote images; use simple inline SVG or placeholder blocks.

OUTPUT FORMAT (STRICT)
Return ONLY valid JSON (no markdown, no extra commentary, no code fences).
JSON shape MUST be:
{
  "files": [
    { "filename": "path/from/project/root", "language": "html|css|javascript|json|md", "content": "..." }
  ]
}

VERY IMPORTANT JSON RULES
- Every "content" must be a valid JSON string:
  - escape newlines as \n
  - escape tabs as \t
  - escape quotes as \"
  - escape backslashes as \\
- Do not include raw newlines inside JSON strings.

Deliver the full set of files needed for the website to run on its own.
`, strings.TrimSpace(userPrompt), siteType, pricingLine))
}
