
package crawler

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"shoplist-csv/internal/config"
	"shoplist-csv/internal/models"
	"shoplist-csv/pkg/logger"
)

type HTTPClient struct {
	page      *resty.Client
	images    *resty.Client
	chunkSize int
	log       *logger.Logger
}

func NewHTTPClient(cfg config.HTTP, log *logger.Logger) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	}
	newClient := func(timeout time.Duration) *resty.Client {
		return resty.NewWithClient(&http.Client{Transport: transport}).
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("User-Agent", cfg.UserAgent).
			SetLogger(log)
	}
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = 1024
	}
	return &HTTPClient{
		page:      newClient(cfg.PageTimeout),
		images:    newClient(cfg.ImageTimeout),
		chunkSize: chunk,
		log:       log,
	}
}

// Fetch performs a single GET of rawURL and returns the body as text.
// Any status >= 400 is an error; nothing is retried.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (models.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		if err == nil {
			err = errors.New("invalid url")
		}
		return models.Document{}, &TransportError{Kind: KindRequest, URL: rawURL, Err: err}
	}

	resp, err := h.page.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		Get(u.String())
	if err != nil {
		if ctx.Err() != nil {
			return models.Document{}, ctx.Err()
		}
		return models.Document{}, &TransportError{Kind: classify(err), URL: rawURL, Err: err}
	}
	if resp.StatusCode() >= 400 {
		return models.Document{}, &TransportError{Kind: KindHTTPStatus, URL: rawURL, StatusCode: resp.StatusCode()}
	}

	finalURL := rawURL
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}
	h.log.Debugf("fetched %s (%d bytes) in %s", finalURL, len(resp.Body()), resp.Time())
	return models.Document{
		URL:         finalURL,
		Body:        string(resp.Body()),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}
