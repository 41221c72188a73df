// Package httpsource reads the benefit record set from a read-only JSON
// document at a fixed URL, the origin shape the catalog was built around.
package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"yutai/internal/core"
)

const maxDocumentBytes = 32 << 20 // origin document is a few MB at most

type Source struct {
	url    string
	client *http.Client
}

// New creates a source for the given document URL with pooled connections
// and conservative timeouts.
func New(url string) *Source {
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	return &Source{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// ListRecords implements catalog.RecordSource. Retrieval and parse failures
// are returned to the caller; they never reach the core, which only consumes
// the record set after a successful load.
func (s *Source) ListRecords(ctx context.Context) ([]core.BenefitRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch record document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch record document: unexpected status %d from %s", resp.StatusCode, s.url)
	}

	var records []core.BenefitRecord
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentBytes))
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode record document: %w", err)
	}
	return records, nil
}
