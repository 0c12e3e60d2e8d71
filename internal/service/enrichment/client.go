package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/kapu/tastejourney-go/internal/util"
	"github.com/kapu/tastejourney-go/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const maxResponseBytes = 4 << 20

// Requester performs a GET and returns the raw body.
type Requester interface {
	Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// apiClient is a GET-only JSON client behind a circuit breaker. No retries.
type apiClient struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
}

func newAPIClient(name string, httpClient *http.Client, logger *zap.Logger) *apiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &apiClient{
		httpClient: httpClient,
		breaker:    util.NewCircuitBreaker[[]byte](name, logger),
		logger:     logger,
	}
}

func (c *apiClient) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, params)
	})
}

func (c *apiClient) do(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, errors.NewAPIError(fmt.Sprintf("upstream error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"endpoint": endpoint,
			"body":     util.TruncateString(string(body), 200),
		})
	}
	return body, nil
}
