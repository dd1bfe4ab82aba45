package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"milk-collection-service/internal/ports"
)

// HTTPScheduleSource talks to the optimizer backend over its REST API. It
// implements both ports.ScheduleSource and ports.ScheduleSink.
type HTTPScheduleSource struct {
	client  *http.Client
	baseURL string
}

func NewHTTPScheduleSource(baseURL string) *HTTPScheduleSource {
	return &HTTPScheduleSource{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// The optimizer has shipped three envelope shapes over time: bare clusters,
// clusters under "data", and clusters under "optimization_results". Accept
// all of them.
type scheduleEnvelope struct {
	Clusters []ports.RawCluster `json:"clusters"`
	Data     *struct {
		Clusters []ports.RawCluster `json:"clusters"`
	} `json:"data"`
	OptimizationResults *struct {
		Clusters []ports.RawCluster `json:"clusters"`
	} `json:"optimization_results"`
}

func (e scheduleEnvelope) clusters() []ports.RawCluster {
	if len(e.Clusters) > 0 {
		return e.Clusters
	}
	if e.Data != nil && len(e.Data.Clusters) > 0 {
		return e.Data.Clusters
	}
	if e.OptimizationResults != nil {
		return e.OptimizationResults.Clusters
	}
	return nil
}

func (s *HTTPScheduleSource) FetchLatest(ctx context.Context) (ports.RawScheduleDocument, error) {
	url := s.baseURL + "/api/v1/trips/schedule"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.RawScheduleDocument{}, fmt.Errorf("optimizer: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return ports.RawScheduleDocument{}, fmt.Errorf("optimizer: fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.RawScheduleDocument{}, fmt.Errorf("optimizer: fetch schedule: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env scheduleEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return ports.RawScheduleDocument{}, fmt.Errorf("optimizer: decode schedule: %w", err)
	}
	return ports.RawScheduleDocument{Clusters: env.clusters()}, nil
}

func (s *HTTPScheduleSource) SaveManual(ctx context.Context, doc ports.RawScheduleDocument) error {
	payload := map[string]any{
		"optimization_results": map[string]any{
			"clusters":  doc.Clusters,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("optimizer: encode manual schedule: %w", err)
	}

	url := s.baseURL + "/api/v1/trips/schedule/update"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("optimizer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("optimizer: save manual schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("optimizer: save manual schedule: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
