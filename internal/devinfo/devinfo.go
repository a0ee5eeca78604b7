// Package devinfo fetches the optional developer-info panel data.
//
// The panel is best-effort by contract: any failure (network error, non-2xx
// status, malformed payload) means the panel is simply absent. Callers log at
// debug level at most and never surface errors to the user.
package devinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var client = &http.Client{Timeout: 5 * time.Second}

// Endpoint is one linked endpoint row in the panel.
type Endpoint struct {
	Label       string `json:"label"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Info is the developer-info payload.
type Info struct {
	DBPath     string     `json:"db_path"`
	TableCount int        `json:"table_count"`
	Endpoints  []Endpoint `json:"endpoints"`
}

// Fetch retrieves the developer info from the given URL. A nil Info with a
// non-nil error means the panel should not render; the error exists only for
// debug logging.
func Fetch(ctx context.Context, url string) (*Info, error) {
	if url == "" {
		return nil, fmt.Errorf("no devinfo url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "excerpt-devinfo")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request devinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request devinfo: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read devinfo body: %w", err)
	}

	var info Info
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode devinfo: %w", err)
	}

	return &info, nil
}
