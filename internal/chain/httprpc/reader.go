// Package httprpc provides a chain reader backed by a JSON metrics endpoint.
// The predicate itself never performs I/O; this reader is host-side wiring for
// deployments where block metrics are served over HTTP.
package httprpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/heatwatch/thermaltrap/internal/metrics"
	"github.com/heatwatch/thermaltrap/pkg/trap"
)

const readerID = "httprpc"

// Reader implements trap.ChainReader for an HTTP metrics endpoint, with a
// per-metric TTL cache so the two reads of one collection cycle do not hammer
// the source.
type Reader struct {
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration

	mu     sync.RWMutex
	cached map[string]cachedMetric
}

type cachedMetric struct {
	value  uint64
	expiry time.Time
}

var _ trap.ChainReader = (*Reader)(nil)

// New creates a new HTTP chain reader.
func New(baseURL string, cacheTTL time.Duration) *Reader {
	return &Reader{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cacheTTL:   cacheTTL,
		cached:     make(map[string]cachedMetric),
	}
}

// Describe implements trap.ChainReader.
func (r *Reader) Describe() trap.Schema {
	return trap.Schema{
		ID:          readerID,
		Description: "Block metrics fetched from a JSON endpoint",
	}
}

// BaseFee implements trap.ChainReader.
func (r *Reader) BaseFee(ctx context.Context) (uint64, error) {
	return r.fetch(ctx, "base_fee")
}

// GasLimit implements trap.ChainReader.
func (r *Reader) GasLimit(ctx context.Context) (uint64, error) {
	return r.fetch(ctx, "gas_limit")
}

func (r *Reader) fetch(ctx context.Context, metric string) (uint64, error) {
	r.mu.RLock()
	if cached, ok := r.cached[metric]; ok && time.Now().Before(cached.expiry) {
		r.mu.RUnlock()
		return cached.value, nil
	}
	r.mu.RUnlock()

	url := fmt.Sprintf("%s/api/chain/metrics/%s", r.baseURL, metric)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.ChainReadErrors.WithLabelValues(readerID, "request_creation").Inc()
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		metrics.ChainReadErrors.WithLabelValues(readerID, "http_error").Inc()
		return 0, fmt.Errorf("%w: %v", trap.ErrChainSourceUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			metrics.ChainReadErrors.WithLabelValues(readerID, "body_close_error").Inc()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.ChainReadErrors.WithLabelValues(readerID, fmt.Sprintf("status_%d", resp.StatusCode)).Inc()
		return 0, fmt.Errorf("%w: unexpected status code %d", trap.ErrChainSourceUnavailable, resp.StatusCode)
	}

	var result struct {
		Value uint64 `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ChainReadErrors.WithLabelValues(readerID, "decode_error").Inc()
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	r.mu.Lock()
	r.cached[metric] = cachedMetric{value: result.Value, expiry: time.Now().Add(r.cacheTTL)}
	r.mu.Unlock()

	return result.Value, nil
}
