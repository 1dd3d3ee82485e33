package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/transcript"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sethvargo/go-retry"
)

// TranscriptionClient transcribes recorded audio files with OpenAI's speech-to-text endpoint.
type TranscriptionClient struct {
	client    openai.Client
	model     string
	language  string
	retryMax  uint64
	retryBase time.Duration
	logger    *observability.Logger
}

func NewTranscriptionClient(cfg config.TranscriptionConfig, pipeline config.PipelineConfig, logger *observability.Logger) (*TranscriptionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	options := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: pipeline.HTTPTimeout}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		options = append(options, option.WithBaseURL(cfg.BaseURL))
	}

	return &TranscriptionClient{
		client:    openai.NewClient(options...),
		model:     cfg.Model,
		language:  cfg.Language,
		retryMax:  pipeline.RetryMax,
		retryBase: pipeline.RetryBase,
		logger:    logger,
	}, nil
}

func (c *TranscriptionClient) Name() string {
	return "openai"
}

// verboseTranscription is the subset of the verbose_json response we need
type verboseTranscription struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the file and returns its timed segments in order.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "provider", Value: c.Name()},
		observability.Field{Key: "model", Value: c.model},
	)

	var raw string
	backoff := retry.WithMaxRetries(c.retryMax, retry.NewExponential(c.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := c.transcribeOnce(ctx, audioPath)
		if err != nil {
			if isRetryable(err) {
				c.logger.Warn(ctx, "transcription request failed, retrying: "+err.Error())
				return retry.RetryableError(err)
			}
			return err
		}
		raw = body
		return nil
	})
	if err != nil {
		c.logger.Error(ctx, "failed to transcribe audio", err)
		return nil, fmt.Errorf("%w: %s: %v", transcript.ErrTranscription, c.Name(), err)
	}

	segments, err := parseSegments(raw)
	if err != nil {
		c.logger.Error(ctx, "failed to parse transcription response", err)
		return nil, fmt.Errorf("%w: %s: %v", transcript.ErrTranscription, c.Name(), err)
	}

	c.logger.Info(ctx, fmt.Sprintf("transcribed %d segments", len(segments)))
	return segments, nil
}

func (c *TranscriptionClient) transcribeOnce(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   f,
		Model:                  openai.AudioModel(c.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}
	if c.language != "" {
		params.Language = openai.String(c.language)
	}

	resp, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.RawJSON(), nil
}

// parseSegments falls back to a single segment spanning the file when the model
// returns text without segment timestamps.
func parseSegments(raw string) ([]transcript.Segment, error) {
	var v verboseTranscription
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}

	if len(v.Segments) == 0 {
		if v.Text == "" {
			return nil, nil
		}
		return []transcript.Segment{{Start: 0, End: v.Duration, Text: v.Text}}, nil
	}

	segments := make([]transcript.Segment, len(v.Segments))
	for i, s := range v.Segments {
		segments[i] = transcript.Segment{Start: s.Start, End: s.End, Text: s.Text}
	}
	return segments, nil
}

// isRetryable retries throttling and server errors; bad requests and auth failures are final.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, os.ErrNotExist)
}
