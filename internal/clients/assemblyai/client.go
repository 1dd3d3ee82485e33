package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/transcript"

	"github.com/sethvargo/go-retry"
)

const (
	defaultBaseURL      = "https://api.assemblyai.com"
	defaultPollInterval = 3 * time.Second
)

var errRejected = errors.New("request rejected")

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL     string `json:"audio_url"`
	SpeechModel  string `json:"speech_model,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type sentencesResponse struct {
	Sentences []struct {
		Text  string `json:"text"`
		Start int64  `json:"start"` // milliseconds
		End   int64  `json:"end"`
	} `json:"sentences"`
}

// Client transcribes audio files with AssemblyAI's upload, submit and poll API
type Client struct {
	apiKey       string
	baseURL      string
	model        string
	language     string
	pollInterval time.Duration
	retryMax     uint64
	retryBase    time.Duration
	httpClient   *http.Client
	logger       *observability.Logger
}

// NewClient creates a new AssemblyAI transcription client
func NewClient(cfg config.TranscriptionConfig, pipeline config.PipelineConfig, logger *observability.Logger) *Client {
	baseURL := defaultBaseURL
	if cfg.BaseURL != "" {
		baseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		model:        cfg.Model,
		language:     cfg.Language,
		pollInterval: defaultPollInterval,
		retryMax:     pipeline.RetryMax,
		retryBase:    pipeline.RetryBase,
		httpClient:   &http.Client{Timeout: pipeline.HTTPTimeout},
		logger:       logger,
	}
}

func (c *Client) Name() string {
	return "assemblyai"
}

// Transcribe uploads the file, submits a job and polls until it completes or
// ctx expires. Segments are the sentences AssemblyAI detected.
func (c *Client) Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "provider", Value: c.Name()},
		observability.Field{Key: "model", Value: c.model},
	)

	segments, err := c.transcribe(ctx, audioPath)
	if err != nil {
		c.logger.Error(ctx, "failed to transcribe audio", err)
		return nil, fmt.Errorf("%w: %s: %v", transcript.ErrTranscription, c.Name(), err)
	}

	c.logger.Info(ctx, fmt.Sprintf("transcribed %d segments", len(segments)))
	return segments, nil
}

func (c *Client) transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	var upload uploadResponse
	if err := c.do(ctx, http.MethodPost, "/v2/upload", "application/octet-stream", audio, &upload); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	body, err := json.Marshal(transcriptRequest{
		AudioURL:     upload.UploadURL,
		SpeechModel:  c.model,
		LanguageCode: c.language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcript request: %w", err)
	}

	var job transcriptResponse
	if err := c.do(ctx, http.MethodPost, "/v2/transcript", "application/json", body, &job); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	if err := c.waitForCompletion(ctx, job.ID); err != nil {
		return nil, err
	}

	var sentences sentencesResponse
	if err := c.do(ctx, http.MethodGet, "/v2/transcript/"+job.ID+"/sentences", "", nil, &sentences); err != nil {
		return nil, fmt.Errorf("sentences: %w", err)
	}

	segments := make([]transcript.Segment, len(sentences.Sentences))
	for i, s := range sentences.Sentences {
		segments[i] = transcript.Segment{
			Start: float64(s.Start) / 1000,
			End:   float64(s.End) / 1000,
			Text:  s.Text,
		}
	}
	return segments, nil
}

func (c *Client) waitForCompletion(ctx context.Context, id string) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var job transcriptResponse
		if err := c.do(ctx, http.MethodGet, "/v2/transcript/"+id, "", nil, &job); err != nil {
			return fmt.Errorf("poll: %w", err)
		}

		switch job.Status {
		case "completed":
			return nil
		case "error":
			return fmt.Errorf("transcript %s failed: %s", id, job.Error)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("poll transcript %s: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}

// do sends one API request with bounded retries on network errors, 429 and 5xx.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out interface{}) error {
	backoff := retry.WithMaxRetries(c.retryMax, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.apiKey)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
		}
		if resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("%w: %s %s: status %d: %s", errRejected, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
		return nil
	})
}
