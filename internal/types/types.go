package types

// Chat roles understood by every provider we talk to.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged entry in a chat-completion request.
// Ordering is significant: system first, then user.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GeneratedFile represents the structure expected from the LLM for each file.
type GeneratedFile struct {
	Filename    string `json:"filename"`
	Language    string `json:"language"` // e.g., "html", "css", "javascript"
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
}

// GeneratedImage is an AI-generated asset attached to a project. URL is
// either a data URI or an http(s) URL.
type GeneratedImage struct {
	URL         string `json:"url"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
}

// LLMIntegration describes how the generated site could call a model itself.
// Passed through from the LLM output without further validation.
type LLMIntegration struct {
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
	APIEndpoint string `json:"apiEndpoint,omitempty"`
	SampleCode  string `json:"sampleCode,omitempty"`
}

// SchemaColumn and SchemaTable describe an optional database schema blob.
type SchemaColumn struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Constraints string `json:"constraints,omitempty"`
}

type SchemaTable struct {
	Name    string         `json:"name"`
	Columns []SchemaColumn `json:"columns"`
}

type DatabaseSchema struct {
	Tables []SchemaTable `json:"tables,omitempty"`
	SQL    string        `json:"sql,omitempty"`
}

// APIEndpoint is descriptive metadata about an endpoint the generated site
// would expose.
type APIEndpoint struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	Description  string `json:"description"`
	RequestBody  string `json:"requestBody,omitempty"`
	ResponseBody string `json:"responseBody,omitempty"`
}

// GeneratedProject is the structured output of one generation request.
// Files must be non-empty for the project to count as a successful parse;
// everything else is optional and carried opaquely.
type GeneratedProject struct {
	Files          []GeneratedFile  `json:"files"`
	Images         []GeneratedImage `json:"images,omitempty"`
	LLMIntegration *LLMIntegration  `json:"llmIntegration,omitempty"`
	DatabaseSchema *DatabaseSchema  `json:"databaseSchema,omitempty"`
	APIEndpoints   []APIEndpoint    `json:"apiEndpoints,omitempty"`
}
