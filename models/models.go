package models

// AnalysisRequest is the body of POST /api/v3/analyze. All fields are optional
// free-form strings; ImageURL references a temporarily stored blob.
type AnalysisRequest struct {
	MessagesText string `json:"messages_text"`
	UserContext  string `json:"user_context"`
	LinkURL      string `json:"link_url"`
	ExtraNotes   string `json:"extra_notes"`
	ImageURL     string `json:"image_url"`
}

// InlineImage is an image payload embedded directly in a model request
// rather than referenced by URL. Data is base64-encoded.
type InlineImage struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// ImageFetchError describes why an image could not be turned into an inline
// attachment. It is not a Go error: the analysis degrades to text-only and
// the reason is appended to the prompt instead of aborting the request.
type ImageFetchError struct {
	Reason string `json:"reason"`
	Detail any    `json:"detail,omitempty"`
}

// Supported scam scenario labels. The model must pick exactly one.
const (
	ScenarioRomance       = "romance"
	ScenarioMarketplace   = "marketplace"
	ScenarioCRATax        = "cra_tax"
	ScenarioHighway407    = "highway407_toll"
	ScenarioPigButchering = "pig_butchering"
	ScenarioUnknown       = "unknown"
)

// Risk levels shared by the report and its red flags.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// AnalysisReport is the documented shape of a sanitized model reply. The
// analyze endpoint returns the normalized JSON object itself (element-level
// repair is out of scope), so this struct is the schema contract used by the
// prompt, the stub provider and tests rather than the wire type.
type AnalysisReport struct {
	Scenario        string          `json:"scenario"`
	Confidence      float64         `json:"confidence"`
	RiskLevel       string          `json:"risk_level"`
	Summary         string          `json:"summary"`
	RedFlags        []RedFlag       `json:"red_flags"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	NextSteps       []NextStep      `json:"next_steps"`
	SafetyNotes     []string        `json:"safety_notes"`
}

// RedFlag is a single suspicious signal found in the submitted material.
type RedFlag struct {
	Title       string   `json:"title"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

// Inconsistency is a contradiction between claims in the submitted material.
type Inconsistency struct {
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	WhyItMatters       string   `json:"why_it_matters"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// NextStep groups recommended actions under a category such as
// payment_safety or verify_identity.
type NextStep struct {
	Category string   `json:"category"`
	Steps    []string `json:"steps"`
}
