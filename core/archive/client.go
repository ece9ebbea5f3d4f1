package archive

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client defines the interface for archive operations.
type Client interface {
	// EnsureBucket creates the archive bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error
	// Put stores a payload under the given object name.
	Put(ctx context.Context, bucket, objectName string, payload []byte) error
}

// NewClient creates a new archive client backed by Minio/S3.
func NewClient(cfg Config) (Client, error) {
	// Minio expects an endpoint without scheme.
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict transport timeouts so a slow storage backend can never hold up
	// webhook intake for longer than the configured window.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioClientWrapper{client: minioClient}, nil
}

type minioClientWrapper struct {
	client *minio.Client
}

func (c *minioClientWrapper) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

func (c *minioClientWrapper) Put(ctx context.Context, bucket, objectName string, payload []byte) error {
	_, err := c.client.PutObject(ctx, bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to archive payload %s: %w", objectName, err)
	}
	return nil
}

// ObjectName builds the archive object key for a delivery: payloads are laid
// out by capture date, then ray id, so a day's traffic lists together.
func ObjectName(capturedAt time.Time, rayID string) string {
	return fmt.Sprintf("webhooks/%s/%s.json", capturedAt.Format("2006-01-02"), rayID)
}
