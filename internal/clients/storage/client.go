package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/sethvargo/go-retry"
)

// ErrStorage wraps every failure to reach or read the recording bucket.
var ErrStorage = errors.New("recording storage failed")

const presignTTL = 24 * time.Hour

// Client downloads call recordings from S3-compatible storage
type Client struct {
	s3            *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
	scratchDir    string
	retryMax      uint64
	retryBase     time.Duration
	logger        *observability.Logger
}

// NewClient creates a storage client against the configured endpoint. Path-style
// addressing is forced since Supabase and MinIO style endpoints need it.
func NewClient(cfg config.StorageConfig, pipeline config.PipelineConfig, logger *observability.Logger) *Client {
	s3Client := s3.New(s3.Options{
		Region:           cfg.Region,
		Credentials:      aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.Secret, "")),
		BaseEndpoint:     aws.String(cfg.Endpoint),
		UsePathStyle:     true,
		RetryMaxAttempts: 1,
		HTTPClient:       &http.Client{Timeout: pipeline.HTTPTimeout},
	})

	return &Client{
		s3:            s3Client,
		presign:       s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		scratchDir:    cfg.ScratchDir,
		retryMax:      pipeline.RetryMax,
		retryBase:     pipeline.RetryBase,
		logger:        logger,
	}
}

// Bucket returns the recordings bucket name
func (c *Client) Bucket() string {
	return c.bucket
}

// KeyFromLocation turns an egress file location (a full URL or a bare key) into an object key.
func (c *Client) KeyFromLocation(location string) string {
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		location = u.Path
	}
	location = strings.TrimPrefix(location, "/")
	if i := strings.Index(location, c.bucket+"/"); i >= 0 {
		location = location[i+len(c.bucket)+1:]
	}
	return location
}

// Download fetches the object into a fresh directory under the scratch dir and
// returns the local path. The caller removes the directory when done.
func (c *Client) Download(ctx context.Context, key string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "bucket", Value: c.bucket},
		observability.Field{Key: "object_key", Value: key},
	)

	dir, err := os.MkdirTemp(c.scratchDir, "recording-")
	if err != nil {
		return "", fmt.Errorf("%w: create scratch dir: %v", ErrStorage, err)
	}
	dest := filepath.Join(dir, path.Base(key))

	backoff := retry.WithMaxRetries(c.retryMax, retry.NewExponential(c.retryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.downloadOnce(ctx, key, dest)
		if err != nil && isRetryable(err) {
			c.logger.Warn(ctx, "recording download failed, retrying: "+err.Error())
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		c.logger.Error(ctx, "failed to download recording", err)
		return "", fmt.Errorf("%w: download %s: %v", ErrStorage, key, err)
	}

	c.logger.Info(ctx, "recording downloaded")
	return dest, nil
}

func (c *Client) downloadOnce(ctx context.Context, key, dest string) error {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return err
	}
	defer out.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, out.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// isRetryable treats missing objects and rejected credentials as permanent.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "NoSuchBucket", "NoSuchKey":
			return false
		}
	}
	return true
}

// PublicURL returns a link to the recording for the downstream webhook: a plain
// URL when a public base is configured, a presigned GET otherwise.
func (c *Client) PublicURL(ctx context.Context, key string) (string, error) {
	if c.publicBaseURL != "" {
		return c.publicBaseURL + "/" + c.bucket + "/" + key, nil
	}

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("%w: presign %s: %v", ErrStorage, key, err)
	}
	return req.URL, nil
}
