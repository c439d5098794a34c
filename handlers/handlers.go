package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"scam-analyze-service/blob"
	"scam-analyze-service/config"
	"scam-analyze-service/metrics"
	"scam-analyze-service/models"
	"scam-analyze-service/parser"
	"scam-analyze-service/service"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedUploadTypes is the content-type allowlist for staged images.
var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Handlers represents the HTTP handlers
type Handlers struct {
	cfg   *config.Config
	svc   *service.Service
	blobs *blob.Client
}

// NewHandlers creates new HTTP handlers
func NewHandlers(cfg *config.Config, svc *service.Service, blobs *blob.Client) *Handlers {
	return &Handlers{cfg: cfg, svc: svc, blobs: blobs}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scam-analyze-service",
	})
}

// Analyze runs one scam risk analysis and returns the sanitized report.
func (h *Handlers) Analyze(c *gin.Context) {
	start := time.Now()
	requestID := uuid.NewString()

	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		// An empty body means an all-defaults request; anything else
		// unparsable is a client error.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), &req)

	result := "ok"
	switch {
	case err == nil:
		c.JSON(http.StatusOK, report)
	case errors.Is(err, service.ErrMissingCredential):
		result = "missing_credential"
		log.Errorf("analysis %s failed: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Missing " + h.cfg.CredentialEnvName(),
		})
	default:
		var invalid *parser.InvalidResponseError
		if errors.As(err, &invalid) {
			result = "invalid_response"
			log.Errorf("analysis %s failed: model returned non-JSON", requestID)
			// Raw model text is echoed only for this error kind, to aid
			// debugging without leaking other upstream internals.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid AI response (not JSON)",
				"raw":   invalid.Raw,
			})
			break
		}
		result = "gateway_error"
		log.Errorf("analysis %s failed: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Analysis failed",
			"detail": err.Error(),
		})
	}

	metrics.AnalyzeTotal.WithLabelValues(result).Inc()
	metrics.AnalyzeDurationSeconds.WithLabelValues(result).Observe(time.Since(start).Seconds())
	log.Infof("analysis %s done result=%s duration=%s", requestID, result, time.Since(start))
}

// Upload stages an image in the blob store and returns its URL. The analyze
// flow deletes the blob once the analysis completes.
func (h *Handlers) Upload(c *gin.Context) {
	contentType := c.ContentType()
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		metrics.UploadTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type", "detail": contentType})
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, h.cfg.MaxUploadBytes+1))
	if err != nil {
		metrics.UploadTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}
	if int64(len(data)) > h.cfg.MaxUploadBytes {
		metrics.UploadTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image too large"})
		return
	}

	name := fmt.Sprintf("scam-analysis/%s%s", uuid.NewString(), ext)
	url, err := h.blobs.Put(c.Request.Context(), name, contentType, data)
	if err != nil {
		metrics.UploadTotal.WithLabelValues("error").Inc()
		log.Errorf("upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	metrics.UploadTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"url": url})
}
