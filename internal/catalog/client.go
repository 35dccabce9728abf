package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/davidrenteria/shopvista-backend/pkg/config"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/davidrenteria/shopvista-backend/pkg/logger"
	"github.com/davidrenteria/shopvista-backend/pkg/metrics"
)

// ClientParams groups dependencies for the catalog client.
type ClientParams struct {
	Config     config.CatalogConfig
	Logger     *logger.Logger
	Metrics    *metrics.StorefrontMetrics
	HTTPClient *http.Client
}

// Client fetches the product feed from the external source. The feed is
// fetched once at startup; there is no retry or pagination.
type Client struct {
	url        string
	httpClient *http.Client
	logg       *logger.Logger
	metrics    *metrics.StorefrontMetrics
}

// NewClient builds a catalog client for the configured endpoint.
func NewClient(params ClientParams) (*Client, error) {
	url := strings.TrimSpace(params.Config.URL)
	if url == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog url is required")
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Config.FetchTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		url:        url,
		httpClient: httpClient,
		logg:       params.Logger,
		metrics:    params.Metrics,
	}, nil
}

// Fetch performs a single GET against the product source and returns the
// validated catalog snapshot. Any network or decode failure is surfaced as a
// catalog-unavailable error; no partial or cached list is returned.
func (c *Client) Fetch(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	snapshot, err := c.fetch(ctx)
	c.metrics.ObserveFetch(time.Since(start), err)
	return snapshot, err
}

func (c *Client) fetch(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogUnavailable, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogUnavailable, err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeCatalogUnavailable,
			fmt.Errorf("catalog source returned status %d", resp.StatusCode),
			"fetch catalog",
		)
	}

	var records []Product
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogUnavailable, err, "decode catalog feed")
	}

	valid := make([]Product, 0, len(records))
	quarantined := 0
	for _, record := range records {
		if err := record.validate(); err != nil {
			quarantined++
			if c.logg != nil {
				dropCtx := c.logg.WithFields(ctx, map[string]any{
					"product_id": record.ID,
					"reason":     err.Error(),
				})
				c.logg.Warn(dropCtx, "catalog.record_quarantined")
			}
			continue
		}
		valid = append(valid, record)
	}

	if c.logg != nil {
		loadCtx := c.logg.WithFields(ctx, map[string]any{
			"products":    len(valid),
			"quarantined": quarantined,
		})
		c.logg.Info(loadCtx, "catalog.loaded")
	}

	return New(valid), nil
}
