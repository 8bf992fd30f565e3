package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/domain/emotion"
	"github.com/netslayer67/mws-backend/pkg/config"
	"github.com/netslayer67/mws-backend/pkg/logger"
)

// Client talks to the external emotion-detection service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new detector client
func NewClient(cfg config.DetectorConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// detectResponse mirrors the detector's wire format.
type detectResponse struct {
	Emotion          string   `json:"emotion"`
	Confidence       float64  `json:"confidence"`
	Valence          float64  `json:"valence"`
	Arousal          float64  `json:"arousal"`
	Intensity        float64  `json:"intensity"`
	MicroExpressions []string `json:"microExpressions"`
	Error            string   `json:"error,omitempty"`
}

// DetectEmotion uploads a captured frame and returns the raw facial
// reading. Callers must treat any error as fatal for the analysis; a
// failed detection never produces a fallback sample.
func (c *Client) DetectEmotion(ctx context.Context, image io.Reader, filename string) (*emotion.Sample, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build detector request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Info("sending frame to emotion detector",
		zap.String("filename", filename),
		zap.Int("bytes", body.Len()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion detection request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("emotion detector returned status %d: %s", resp.StatusCode, string(payload))
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode detector response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("emotion detector error: %s", decoded.Error)
	}
	if decoded.Emotion == "" {
		return nil, fmt.Errorf("emotion detector returned no face")
	}

	return &emotion.Sample{
		PrimaryEmotion: decoded.Emotion,
		Confidence:     decoded.Confidence,
		Valence:        decoded.Valence,
		Arousal:        decoded.Arousal,
		Intensity:      decoded.Intensity,
		Explanations:   decoded.MicroExpressions,
	}, nil
}

// HealthCheck probes the detector's health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("detector unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("detector unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
