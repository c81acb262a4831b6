// Package vimeo looks up playback metadata for videos hosted on Vimeo.
package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheTTL       = 24 * time.Hour
	requestTimeout = 5 * time.Second
)

var ErrUnknownVideo = errors.New("vimeo video not found")

type Client struct {
	httpClient *http.Client
	oembedURL  string
	redis      *redis.Client
}

// NewClient builds an oEmbed client. redisClient may be nil, in which case nothing is cached.
func NewClient(oembedURL string, redisClient *redis.Client) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		oembedURL:  oembedURL,
		redis:      redisClient,
	}
}

type oembedResponse struct {
	Duration int `json:"duration"`
}

// Duration returns the video length in whole seconds.
func (c *Client) Duration(ctx context.Context, vimeoID string) (int, error) {
	if vimeoID == "" {
		return 0, ErrUnknownVideo
	}
	key := "vimeo:duration:" + vimeoID
	if c.redis != nil {
		if cached, err := c.redis.Get(ctx, key).Int(); err == nil {
			return cached, nil
		}
	}

	q := url.Values{}
	q.Set("url", "https://vimeo.com/"+vimeoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oembedURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build oembed request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, ErrUnknownVideo
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode oembed: %w", err)
	}
	if c.redis != nil && body.Duration > 0 {
		c.redis.Set(ctx, key, strconv.Itoa(body.Duration), cacheTTL)
	}
	return body.Duration, nil
}
