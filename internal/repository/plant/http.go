package plant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"plantshop/internal/domain"
	"plantshop/internal/logging"
)

const (
	defaultPerPage   = 12
	maxErrorBodySize = 1024
)

// HTTPOptions configures the plants API client.
type HTTPOptions struct {
	BaseURL string
	// Token is sent as the token query parameter when set.
	Token  string
	Client *http.Client
	Logger *zap.Logger
	// BreakerFailures is the number of consecutive failures that opens the
	// breaker. Zero means 5.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type httpRepo struct {
	baseURL *url.URL
	token   string
	client  *http.Client
	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker[domain.CatalogPage]
}

// NewHTTP builds a Repository backed by the plants REST API.
func NewHTTP(opts HTTPOptions) (Repository, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse plants api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("plants api url %q must be absolute", opts.BaseURL)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	logger := logging.OrNop(opts.Logger)
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := opts.BreakerCooldown
	if cooldown == 0 {
		cooldown = 30 * time.Second
	}

	r := &httpRepo{
		baseURL: base,
		token:   opts.Token,
		client:  client,
		logger:  logger,
	}
	r.breaker = gobreaker.NewCircuitBreaker[domain.CatalogPage](gobreaker.Settings{
		Name:        "plants-api",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("plant repo: breaker state changed", zap.String("breaker", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})
	return r, nil
}

func (r *httpRepo) Fetch(ctx context.Context, page, perPage int, search string) (domain.CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	search = strings.TrimSpace(search)

	var endpoint string
	if search != "" {
		endpoint = r.searchURL(search, page)
	} else {
		endpoint = r.listURL(page, perPage)
	}

	start := time.Now()
	result, err := r.breaker.Execute(func() (domain.CatalogPage, error) {
		body, err := r.get(ctx, endpoint)
		if err != nil {
			return domain.CatalogPage{}, err
		}
		return decode(body)
	})
	if errors.Is(err, context.Canceled) {
		r.logger.Debug("plant repo: fetch cancelled", zap.Int("page", page), zap.String("search", search))
		return domain.CatalogPage{}, err
	}
	if err != nil {
		r.logger.Warn("plant repo: fetch failed",
			zap.Int("page", page),
			zap.String("search", search),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		if errors.Is(err, domain.ErrFetchFailed) {
			return domain.CatalogPage{}, err
		}
		return domain.CatalogPage{}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	r.logger.Debug("plant repo: fetched",
		zap.Int("page", page),
		zap.String("search", search),
		zap.Int("count", len(result.Plants)),
		zap.Int("total", result.TotalCount),
		zap.Duration("took", time.Since(start)))
	return result, nil
}

func (r *httpRepo) listURL(page, perPage int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return r.endpoint(q)
}

func (r *httpRepo) searchURL(search string, page int) string {
	q := url.Values{}
	q.Set("common_name", search)
	q.Set("page", strconv.Itoa(page))
	return r.endpoint(q)
}

func (r *httpRepo) endpoint(q url.Values) string {
	if r.token != "" {
		q.Set("token", r.token)
	}
	u := *r.baseURL
	u.Path = u.Path + "/plants"
	u.RawQuery = q.Encode()
	return u.String()
}

func (r *httpRepo) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		// a caller that went away is not an upstream failure
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: http %d: %s", domain.ErrFetchFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrFetchFailed, err)
	}
	return body, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// decode turns either response shape into a CatalogPage. The list endpoint
// wraps its payload in an extra data object ({"data": {"data": [...], "meta": ...}})
// while search answers with the flat {"data": [...], "meta": ...} form.
func decode(body []byte) (domain.CatalogPage, error) {
	return normalize(body, 2)
}

// normalize accepts both the flat and the nested envelope, descending at most
// depth levels of "data" objects.
func normalize(body []byte, depth int) (domain.CatalogPage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%w: decode response: %v", domain.ErrFetchFailed, err)
	}

	data := bytes.TrimSpace(env.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return domain.CatalogPage{Plants: []domain.Plant{}, TotalCount: env.Meta.Total}, nil
	case data[0] == '[':
		var plants []domain.Plant
		if err := json.Unmarshal(data, &plants); err != nil {
			return domain.CatalogPage{}, fmt.Errorf("%w: decode plants: %v", domain.ErrFetchFailed, err)
		}
		total := env.Meta.Total
		if total < len(plants) {
			total = len(plants)
		}
		return domain.CatalogPage{Plants: plants, TotalCount: total}, nil
	case data[0] == '{' && depth > 1:
		inner, err := normalize(data, depth-1)
		if err != nil {
			return domain.CatalogPage{}, err
		}
		if inner.TotalCount == 0 && env.Meta.Total > 0 {
			inner.TotalCount = env.Meta.Total
		}
		return inner, nil
	default:
		return domain.CatalogPage{}, fmt.Errorf("%w: unexpected data payload", domain.ErrFetchFailed)
	}
}
