package stubllm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"scam-analyze-service/models"
)

// Client is a deterministic, no-network LLM stub intended for CI and local
// end-to-end tests. It returns schema-valid report JSON so sanitization and
// the handler path are exercised without a provider credential.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) Complete(ctx context.Context, text string, image *models.InlineImage) (string, error) {
	// Make output deterministic per-input so the pipeline is stable in CI.
	seed := text
	if image != nil {
		seed += image.Data
	}
	sum := sha256.Sum256([]byte(seed))
	short := hex.EncodeToString(sum[:8])

	report := models.AnalysisReport{
		Scenario:   models.ScenarioUnknown,
		Confidence: 0.5,
		RiskLevel:  models.RiskMedium,
		Summary:    fmt.Sprintf("Stubbed assessment (%s); not a real analysis.", short),
		RedFlags: []models.RedFlag{
			{
				Title:       "Stub signal",
				Severity:    models.RiskLow,
				Description: "Deterministic placeholder red flag.",
				Evidence:    []string{short},
			},
		},
		Inconsistencies: []models.Inconsistency{},
		NextSteps: []models.NextStep{
			{
				Category: "official_verification",
				Steps:    []string{"Verify claims through an official channel."},
			},
		},
		SafetyNotes: []string{"This is stub output for testing only."},
	}

	b, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
