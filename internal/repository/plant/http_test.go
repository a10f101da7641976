package plant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"plantshop/internal/domain"
)

const flatBody = `{"data":[{"id":1,"common_name":"Rose","price":4.5},{"id":2,"common_name":"Fern"}],"meta":{"total":30}}`

const nestedBody = `{"data":{"data":[{"id":3,"common_name":"Oak","synonyms":["Quercus"]}],"links":{"self":"/plants?page=2"},"meta":{"total":13}}}`

func newTestRepo(t *testing.T, handler http.HandlerFunc, opts HTTPOptions) Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	repo, err := NewHTTP(opts)
	require.NoError(t, err)
	return repo
}

func TestFetch_ListUsesPageAndPerPage(t *testing.T) {
	var got url.Values
	var path string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = r.URL.Query()
		_, _ = w.Write([]byte(nestedBody))
	}, HTTPOptions{})

	page, err := repo.Fetch(context.Background(), 2, 12, "")
	require.NoError(t, err)

	assert.Equal(t, "/plants", path)
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "12", got.Get("per_page"))
	assert.Empty(t, got.Get("common_name"))
	require.Len(t, page.Plants, 1)
	assert.Equal(t, "Oak", page.Plants[0].CommonName)
	assert.Equal(t, []string{"Quercus"}, page.Plants[0].Synonyms)
	assert.Equal(t, 13, page.TotalCount)
}

func TestFetch_SearchUsesCommonName(t *testing.T) {
	var got url.Values
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[{"id":9,"common_name":"Dog rose"}],"meta":{"total":1}}`))
	}, HTTPOptions{})

	page, err := repo.Fetch(context.Background(), 1, 12, "  rose ")
	require.NoError(t, err)

	assert.Equal(t, "rose", got.Get("common_name"))
	assert.Equal(t, "1", got.Get("page"))
	assert.Empty(t, got.Get("per_page"))
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Plants, 1)
	assert.Equal(t, 9, page.Plants[0].ID)
}

func TestFetch_FlatShapeAndMissingPrice(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(flatBody))
	}, HTTPOptions{})

	page, err := repo.Fetch(context.Background(), 1, 12, "")
	require.NoError(t, err)

	require.Len(t, page.Plants, 2)
	assert.Equal(t, "4.5", page.Plants[0].Price.String())
	assert.True(t, page.Plants[1].Price.IsZero())
	assert.Equal(t, 30, page.TotalCount)
}

func TestFetch_SendsTokenWhenConfigured(t *testing.T) {
	var token string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		token = r.URL.Query().Get("token")
		_, _ = w.Write([]byte(flatBody))
	}, HTTPOptions{Token: "secret"})

	_, err := repo.Fetch(context.Background(), 1, 12, "")
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestFetch_NormalizesPageArguments(t *testing.T) {
	var got url.Values
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(flatBody))
	}, HTTPOptions{})

	_, err := repo.Fetch(context.Background(), 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "1", got.Get("page"))
	assert.Equal(t, "12", got.Get("per_page"))
}

func TestFetch_NonSuccessStatusIsFetchFailed(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream sad", http.StatusServiceUnavailable)
	}, HTTPOptions{})

	_, err := repo.Fetch(context.Background(), 1, 12, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "503")
}

func TestFetch_MalformedBodyIsFetchFailed(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}, HTTPOptions{})

	_, err := repo.Fetch(context.Background(), 1, 12, "")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_NetworkFailureIsFetchFailed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	repo, err := NewHTTP(HTTPOptions{BaseURL: base})
	require.NoError(t, err)

	_, err = repo.Fetch(context.Background(), 1, 12, "")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_DoesNotRetryOrCache(t *testing.T) {
	var calls atomic.Int32
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(flatBody))
	}, HTTPOptions{})

	_, err := repo.Fetch(context.Background(), 1, 12, "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = repo.Fetch(context.Background(), 1, 12, "")
	require.NoError(t, err)
	_, err = repo.Fetch(context.Background(), 1, 12, "")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, HTTPOptions{BreakerFailures: 2, BreakerCooldown: time.Hour})

	for i := 0; i < 2; i++ {
		_, err := repo.Fetch(context.Background(), 1, 12, "")
		require.ErrorIs(t, err, domain.ErrFetchFailed)
	}
	_, err := repo.Fetch(context.Background(), 1, 12, "")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach upstream")
}

func TestFetch_CancelledCallersDoNotTripBreaker(t *testing.T) {
	var hold atomic.Bool
	hold.Store(true)
	started := make(chan struct{}, 1)
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if hold.Load() {
			started <- struct{}{}
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte(flatBody))
	}, HTTPOptions{BreakerFailures: 2, BreakerCooldown: time.Hour})

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()
		_, err := repo.Fetch(ctx, 1, 12, "")
		cancel()
		require.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, domain.ErrFetchFailed)
	}

	hold.Store(false)
	page, err := repo.Fetch(context.Background(), 1, 12, "")
	require.NoError(t, err)
	assert.Len(t, page.Plants, 2)
}

func TestFetch_TransportErrorKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	repo, err := NewHTTP(HTTPOptions{BaseURL: base})
	require.NoError(t, err)

	_, err = repo.Fetch(context.Background(), 1, 12, "")
	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
}

func TestNewHTTP_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTP(HTTPOptions{BaseURL: "/plants"})
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantCount int
		wantTotal int
		wantErr   bool
	}{
		{name: "flat", body: flatBody, wantCount: 2, wantTotal: 30},
		{name: "nested", body: nestedBody, wantCount: 1, wantTotal: 13},
		{name: "outer meta only", body: `{"data":{"data":[{"id":1}]},"meta":{"total":40}}`, wantCount: 1, wantTotal: 40},
		{name: "null data", body: `{"data":null,"meta":{"total":0}}`, wantCount: 0, wantTotal: 0},
		{name: "missing meta", body: `{"data":[{"id":1},{"id":2}]}`, wantCount: 2, wantTotal: 2},
		{name: "scalar data", body: `{"data":"nope"}`, wantErr: true},
		{name: "triple nesting", body: `{"data":{"data":{"data":[]}}}`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := decode([]byte(tc.body))
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrFetchFailed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, page.Plants, tc.wantCount)
			assert.Equal(t, tc.wantTotal, page.TotalCount)
			assert.NotNil(t, page.Plants)
		})
	}
}
