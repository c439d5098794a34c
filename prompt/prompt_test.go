package prompt

import (
	"strings"
	"testing"

	"scam-analyze-service/models"

	"github.com/stretchr/testify/assert"
)

func sampleRequest() *models.AnalysisRequest {
	return &models.AnalysisRequest{
		MessagesText: "hey, I need $500 for a plane ticket",
		UserContext:  "met on a dating app three weeks ago",
		LinkURL:      "https://example-407-pay.biz",
		ExtraNotes:   "profile photo looks like a stock image",
	}
}

func TestBuildInterpolatesUserFields(t *testing.T) {
	text, attachment := Build(sampleRequest(), nil, nil)

	assert.Nil(t, attachment)
	for _, field := range []string{
		"hey, I need $500 for a plane ticket",
		"met on a dating app three weeks ago",
		"https://example-407-pay.biz",
		"profile photo looks like a stock image",
	} {
		assert.Contains(t, text, field)
	}
	assert.Contains(t, text, "Supported scam categories")
	assert.Contains(t, text, "highway407_toll")
	assert.NotContains(t, text, "IMAGE_FETCH_NOTE")
	assert.False(t, strings.HasPrefix(text, "\n"), "prompt should be trimmed")
}

func TestBuildPassesAttachmentThrough(t *testing.T) {
	inline := &models.InlineImage{MimeType: "image/webp", Data: "aGVsbG8="}

	text, attachment := Build(sampleRequest(), inline, nil)

	assert.Same(t, inline, attachment)
	assert.NotContains(t, text, "IMAGE_FETCH_NOTE")
}

func TestBuildAppendsAdvisoryOnFetchError(t *testing.T) {
	inline := &models.InlineImage{MimeType: "image/jpeg", Data: "aGVsbG8="}
	fetchErr := &models.ImageFetchError{Reason: "too large", Detail: int64(6291456)}

	text, attachment := Build(sampleRequest(), inline, fetchErr)

	assert.Nil(t, attachment, "attachment must be dropped when the fetch failed")
	assert.True(t, strings.HasSuffix(text, "IMAGE_FETCH_NOTE: too large"))
}
