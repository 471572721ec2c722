package gravatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://www.gravatar.com/avatar"

// Client resolves profile photos from the Gravatar service. An email maps to
// an avatar URL via the md5 of its lowercased, trimmed form; a probe request
// with d=404 tells us whether the account actually has a picture.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client using the given HTTP client. Pass nil to use
// http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL}
}

// URL returns the avatar URL for an email, or "" when the address has no
// Gravatar picture.
func (c *Client) URL(ctx context.Context, email string) (string, error) {
	hash := emailHash(email)
	probe := fmt.Sprintf("%s/%s?d=404", c.baseURL, hash)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probe, nil)
	if err != nil {
		return "", fmt.Errorf("gravatar request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gravatar probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gravatar probe: unexpected status %d", resp.StatusCode)
	}
	return fmt.Sprintf("%s/%s?s=300&r=g", c.baseURL, hash), nil
}

func emailHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
