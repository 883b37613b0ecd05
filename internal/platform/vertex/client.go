package vertex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"career_advisor/internal/platform/config"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Failure kinds of the gateway. Callers translate these at the workflow
// boundary; no raw transport error crosses it.
var (
	ErrAuthFailure   = errors.New("failed to obtain AI provider credential")
	ErrUpstream      = errors.New("AI provider returned an error")
	ErrTimeout       = errors.New("AI provider request timed out")
	ErrEmptyResponse = errors.New("AI provider returned no text")
)

// Client calls the Vertex AI generateContent endpoint for a tuned or base
// Gemini model. It is the only component allowed to block on the provider,
// and every call is bounded by the configured timeout.
type Client struct {
	projectID  string
	location   string
	tunedModel string
	baseModel  string
	baseURL    string
	timeout    time.Duration

	httpClient *http.Client
	log        *zap.Logger

	tsOnce sync.Once
	ts     oauth2.TokenSource
	tsErr  error
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		projectID:  cfg.GoogleProjectID,
		location:   cfg.VertexLocation,
		tunedModel: cfg.VertexTunedModel,
		baseModel:  cfg.VertexBaseModel,
		baseURL:    fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", cfg.VertexLocation),
		timeout:    cfg.AITimeout,
		httpClient: &http.Client{},
		log:        logger,
	}
}

// WithBaseURL overrides the provider endpoint. Used in tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// WithTokenSource overrides credential acquisition. Used in tests.
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	c.tsOnce.Do(func() {})
	c.ts = ts
	return c
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.tsOnce.Do(func() {
		c.ts, c.tsErr = google.DefaultTokenSource(ctx, cloudPlatformScope)
	})
	if c.tsErr != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailure, c.tsErr)
	}
	tok, err := c.ts.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailure, err)
	}
	return tok.AccessToken, nil
}

// modelResource picks the tuned model when one is configured, else the
// published base model.
func (c *Client) modelResource() string {
	if c.tunedModel != "" {
		return fmt.Sprintf("projects/%s/locations/%s/tunedModels/%s:generateContent",
			c.projectID, c.location, c.tunedModel)
	}
	return fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		c.projectID, c.location, c.baseModel)
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends a single-turn prompt and returns the raw model
// text from the first candidate.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{Temperature: 0.4, MaxOutputTokens: 2048},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generateContent payload: %w", err)
	}

	url := c.baseURL + "/" + c.modelResource()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create generateContent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("vertex generateContent error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 ||
		out.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
