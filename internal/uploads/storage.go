package uploads

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"obsidian-club/internal/config"
	"obsidian-club/internal/logger"
)

// Client talks to the hosted object-storage service that serves the club's
// imagery. Objects are written once; the service rejects overwrites.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	serviceKey string
	logger     *logger.Logger
}

func NewClient(cfg config.StorageConfig, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		bucket:     cfg.Bucket,
		serviceKey: cfg.ServiceKey,
		logger:     log,
	}
}

// Put stores an object and returns its public URL.
func (c *Client) Put(path, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("storage upload failed: status %d: %s", res.StatusCode, body)
	}

	c.logger.Info("STORAGE", fmt.Sprintf("Stored %s (%d bytes)", path, len(data)))
	return c.PublicURL(path), nil
}

// PublicURL returns the unauthenticated read URL for an object.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}
