package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/logger"
	"github.com/labstack/gommon/bytes"
	"golang.org/x/sync/errgroup"
)

// Endpoint is one upstream source for plan data, tried in order.
type Endpoint struct {
	Name string
	URL  string
	Type string // "csv" or "json"
}

// DefaultEndpoints mirror the Power to Choose export surfaces in order of
// preference.
var DefaultEndpoints = []Endpoint{
	{Name: "CSV Export", URL: "http://www.powertochoose.org/en-us/Plan/ExportToCsv", Type: "csv"},
	{Name: "API v1", URL: "http://api.powertochoose.org/api/PowerToChoose/plans", Type: "json"},
	{Name: "HTTPS CSV Export", URL: "https://www.powertochoose.org/en-us/Plan/ExportToCsv", Type: "csv"},
}

const (
	maxRetries     = 4
	baseRetryDelay = 2 * time.Second
	requestTimeout = 45 * time.Second

	// anything shorter than this is an error page, not a plan export
	minPayloadBytes = 100
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Loader is the data-loading collaborator: it fetches or reads plan and
// reference data and hands the engine plain typed records.
type Loader struct {
	client    *http.Client
	endpoints []Endpoint
}

func New(endpoints []Endpoint) *Loader {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}
	return &Loader{
		client:    &http.Client{Timeout: requestTimeout},
		endpoints: endpoints,
	}
}

// FetchPlans pulls the current plan list from the first endpoint that
// answers, retrying each with exponential backoff before moving on.
func (l *Loader) FetchPlans(ctx context.Context) ([]*domain.Plan, error) {
	var errs []string

	for i, ep := range l.endpoints {
		payload, err := l.fetchEndpoint(ctx, ep, i)
		if err != nil {
			logger.Warnf(ctx, "endpoint %s failed: %s", ep.Name, err.Error())
			errs = append(errs, fmt.Sprintf("%s: %s", ep.Name, err.Error()))
			continue
		}

		logger.Infof(ctx, "fetched %s from %s", bytes.Format(int64(len(payload))), ep.Name)

		if ep.Type == "json" {
			return ParseJSONPlans(payload)
		}
		return ParseCSVPlans(string(payload))
	}

	return nil, fmt.Errorf("all endpoints failed: %s", strings.Join(errs, "; "))
}

func (l *Loader) fetchEndpoint(ctx context.Context, ep Endpoint, attempt int) ([]byte, error) {
	var payload []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("http.NewRequestWithContext: %w", err))
		}
		setBrowserHeaders(req, attempt)

		resp, err := l.client.Do(req)
		if err != nil {
			return fmt.Errorf("http.Get: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("io.ReadAll: %w", err)
		}
		if len(body) < minPayloadBytes {
			return fmt.Errorf("empty or too short response (%d bytes)", len(body))
		}
		if title, isErrPage := detectErrorPage(body); isErrPage {
			return fmt.Errorf("error page received: %q", title)
		}

		payload = body
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = baseRetryDelay
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries-1), ctx))
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func setBrowserHeaders(req *http.Request, attempt int) {
	req.Header.Set("User-Agent", userAgents[attempt%len(userAgents)])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/csv,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}

// Dataset is everything the serving layer loads at startup.
type Dataset struct {
	Plans      *domain.PlansData
	TDURates   *domain.TDURatesData
	LocalTaxes *domain.LocalTaxesData
}

// LoadDataset reads the three data files concurrently.
func (l *Loader) LoadDataset(ctx context.Context, plansPath, tduPath, taxesPath string) (*Dataset, error) {
	ds := &Dataset{}
	eg, _ := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		ds.Plans, err = LoadPlansFile(plansPath)
		return err
	})
	eg.Go(func() error {
		var err error
		ds.TDURates, err = LoadTDURatesFile(tduPath)
		return err
	})
	eg.Go(func() error {
		var err error
		ds.LocalTaxes, err = LoadLocalTaxesFile(taxesPath)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	logger.Infof(ctx, "dataset loaded: %d plans, %d tdus", len(ds.Plans.Plans), len(ds.TDURates.TDUs))
	return ds, nil
}

func LoadPlansFile(path string) (*domain.PlansData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}
	var data domain.PlansData
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal(%s): %w", path, err)
	}
	return &data, nil
}

func LoadTDURatesFile(path string) (*domain.TDURatesData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}
	var data domain.TDURatesData
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal(%s): %w", path, err)
	}
	return &data, nil
}

func LoadLocalTaxesFile(path string) (*domain.LocalTaxesData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}
	var data domain.LocalTaxesData
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal(%s): %w", path, err)
	}
	return &data, nil
}
