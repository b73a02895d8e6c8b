// Package feed fetches one region's raw event listing over HTTP and
// splits it into rows. Transport failures are scoped to the region that
// suffered them.
package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gigwatch/event-listings-service/internal/domain"
)

// Client fetches per-region CSV feeds from the upstream listing site.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client. The timeout bounds each region fetch;
// a timed-out region behaves exactly like a failed one.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads one region's feed and parses it into raw rows. Any
// network, status, or CSV decoding failure comes back as a
// domain.FetchError; there is no retry within a cycle.
func (c *Client) Fetch(ctx context.Context, region domain.Region) ([]domain.RawRow, error) {
	url := c.baseURL + region.Key + ".csv"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{Region: region.Key, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Region: region.Key, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{Region: region.Key, Err: fmt.Errorf("feed returned status %d", resp.StatusCode)}
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, &domain.FetchError{Region: region.Key, Err: fmt.Errorf("decode csv: %w", err)}
	}

	rows := make([]domain.RawRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rowFromRecord(rec))
	}
	c.logger.Debug("feed fetched", "region", region.Key, "rows", len(rows))
	return rows, nil
}

// rowFromRecord maps a CSV record onto the fixed 10-column feed schema.
// Missing trailing fields read as empty strings; the normalizer decides
// whether the row is salvageable.
func rowFromRecord(rec []string) domain.RawRow {
	field := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return domain.RawRow{
		Date:       field(0),
		Name:       field(1),
		Genres:     field(2),
		Location:   field(3),
		Time:       field(4),
		Price:      field(5),
		Age:        field(6),
		Organizer:  field(7),
		TicketLink: field(8),
		EventLink:  field(9),
	}
}
