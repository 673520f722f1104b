package matchgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}

// submitMatchups submits requests concurrently using a worker pool.
func submitMatchups(ctx context.Context, config *Config, requests []MatchupRequest, stats *Stats) error {
	log.Printf("Submitting %d matchup requests with %d workers...", len(requests), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommend"

	var (
		successful int64
		cached     int64
		failed     int64
		submitted  int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	requestChan := make(chan MatchupRequest, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for request := range requestChan {
				select {
				case <-ctx.Done():
					return
				default:
					rec, err := submitSingleMatchup(ctx, client, url, request)

					atomic.AddInt64(&submitted, 1)
					switch {
					case err != nil:
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("request %s failed: %v", requestID(), err)
						}
					case rec.Cached:
						atomic.AddInt64(&successful, 1)
						atomic.AddInt64(&cached, 1)
					default:
						atomic.AddInt64(&successful, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						hit := atomic.LoadInt64(&cached)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("Progress: %d/%d submitted (success: %d, cached: %d, failed: %d)",
								total, len(requests), succ, hit, fail)
						} else {
							fmt.Printf("\rSubmitted: %d/%d (success: %d, cached: %d, failed: %d)",
								total, len(requests), succ, hit, fail)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(requestChan)
		for _, request := range requests {
			select {
			case <-ctx.Done():
				return
			case requestChan <- request:
			}
		}
	}()

	wg.Wait()

	if !config.Verbose {
		fmt.Println()
	}

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsSuccessful = int(atomic.LoadInt64(&successful))
	stats.CacheHits = int(atomic.LoadInt64(&cached))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`Request submission completed:
   Successful: %d
   Cache hits: %d
   Failed: %d
`, stats.RequestsSuccessful, stats.CacheHits, stats.RequestsFailed)

	return nil
}

// submitSingleMatchup submits a single request and parses the recommendation.
func submitSingleMatchup(ctx context.Context, client *HTTPClient, url string, request MatchupRequest) (*Recommendation, error) {
	resp, err := client.Post(ctx, url, request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var rec Recommendation
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &rec, nil
}
