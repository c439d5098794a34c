package service

import (
	"context"
	"errors"
	"strings"

	"scam-analyze-service/blob"
	"scam-analyze-service/config"
	"scam-analyze-service/fetcher"
	"scam-analyze-service/gemini"
	"scam-analyze-service/llm"
	"scam-analyze-service/metrics"
	"scam-analyze-service/models"
	"scam-analyze-service/openai"
	"scam-analyze-service/parser"
	"scam-analyze-service/prompt"
	"scam-analyze-service/stubllm"

	"github.com/apex/log"
)

// ErrMissingCredential means the active provider has no API key configured.
var ErrMissingCredential = errors.New("missing model API key")

// GatewayError wraps a failure of the model call itself (network, quota).
// Fatal to the request, never retried.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return "model call failed: " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Service runs one analysis per call: fetch image, build prompt, call the
// model, sanitize the reply, clean up the staged image. No state is shared
// across requests.
type Service struct {
	cfg       *config.Config
	llmClient llm.Client
	fetcher   *fetcher.Fetcher
	blobs     *blob.Client
}

// NewService creates the analysis service, selecting the LLM provider from
// configuration.
func NewService(cfg *config.Config) *Service {
	var client llm.Client
	switch cfg.LLMProvider {
	case "openai":
		client = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.RequestTimeout)
	case "stub":
		client = stubllm.NewClient()
	default:
		client = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RequestTimeout)
	}
	log.Infof("analyzer LLM provider=%s", client.SourceName())

	return &Service{
		cfg:       cfg,
		llmClient: client,
		fetcher:   fetcher.New(cfg.RequestTimeout, cfg.MaxImageBytes),
		blobs:     blob.NewClient(cfg.BlobBaseURL, cfg.BlobToken, cfg.RequestTimeout),
	}
}

// SourceName returns the active provider label.
func (s *Service) SourceName() string {
	return s.llmClient.SourceName()
}

// Analyze handles a single analysis request and returns the sanitized report
// value. The staged image, when present, is deleted on every exit path.
func (s *Service) Analyze(ctx context.Context, req *models.AnalysisRequest) (any, error) {
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL != "" {
		defer s.cleanup(imageURL)
	}

	if s.missingCredential() {
		return nil, ErrMissingCredential
	}

	var inline *models.InlineImage
	var fetchErr *models.ImageFetchError
	if imageURL != "" {
		inline, fetchErr = s.fetcher.Fetch(ctx, imageURL)
		if fetchErr != nil {
			metrics.ImageFetchFailTotal.WithLabelValues(fetchErr.Reason).Inc()
			log.Warnf("image fetch failed (%s), continuing text-only", fetchErr.Reason)
		}
	}

	text, attachment := prompt.Build(req, inline, fetchErr)

	rawText, err := s.llmClient.Complete(ctx, text, attachment)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	return parser.Sanitize(rawText)
}

func (s *Service) missingCredential() bool {
	switch s.cfg.LLMProvider {
	case "stub":
		return false
	case "openai":
		return s.cfg.OpenAIAPIKey == ""
	default:
		return s.cfg.GeminiAPIKey == ""
	}
}

// cleanup deletes the staged image. Best-effort: failures are logged and
// counted, never surfaced, never retried. Uses a fresh context because the
// request context may already be done.
func (s *Service) cleanup(imageURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	if err := s.blobs.Delete(ctx, imageURL); err != nil {
		metrics.CleanupFailTotal.Inc()
		log.Warnf("staged image cleanup failed: %v", err)
	}
}
