package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/pkg/sample"
	"github.com/dcervantes/powerpick/internal/service/ranker"
)

func newTestService(t *testing.T) *APIService {
	t.Helper()
	svc, err := NewAPIService(&loader.Dataset{
		Plans:      sample.Data(),
		TDURates:   sample.TDUs(),
		LocalTaxes: sample.Taxes(),
	}, []string{"http://localhost:3000"})
	require.NoError(t, err)
	return svc
}

func doRequest(svc *APIService, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	svc.router.ServeHTTP(rec, req)
	return rec
}

func TestRankEndpoint(t *testing.T) {
	svc := newTestService(t)

	payload := map[string]any{
		"plans":           sample.Plans(),
		"avg_monthly_kwh": 1200,
		"tdu_area":        "ONCOR",
		"tax_rate":        0.0825,
	}
	body, err := sonic.MarshalString(payload)
	require.NoError(t, err)

	rec := doRequest(svc, http.MethodPost, "/api/v1/plans/rank", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out ranker.RankOutput
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Plans)
	assert.Equal(t, "ONCOR", out.TDU.Code)
	assert.InDelta(t, 8.25, out.TaxPct, 1e-9)

	// the result is already ordered best-first
	for i := 1; i < len(out.Plans); i++ {
		assert.GreaterOrEqual(t,
			out.Plans[i-1].CombinedScore,
			out.Plans[i].CombinedScore-0.001)
	}
}

func TestRankEndpoint_EmptyPlans(t *testing.T) {
	svc := newTestService(t)

	rec := doRequest(svc, http.MethodPost, "/api/v1/plans/rank", `{"plans": [], "tdu_area": "ONCOR"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankEndpoint_MalformedJSON(t *testing.T) {
	svc := newTestService(t)

	rec := doRequest(svc, http.MethodPost, "/api/v1/plans/rank", `{"plans": [`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankDatasetEndpoint(t *testing.T) {
	svc := newTestService(t)

	rec := doRequest(svc, http.MethodGet, "/api/v1/plans/rank?zip=75201&home_size=medium_home", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out ranker.RankOutput
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Plans)
	assert.Equal(t, "ONCOR", out.TDU.Code)
	assert.InDelta(t, 8.25, out.TaxPct, 1e-9)
}

func TestRankDatasetEndpoint_NoLocation(t *testing.T) {
	svc := newTestService(t)

	rec := doRequest(svc, http.MethodGet, "/api/v1/plans/rank", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDedupeEndpoint(t *testing.T) {
	svc := newTestService(t)

	payload := map[string]any{"plans": sample.Plans()}
	body, err := sonic.MarshalString(payload)
	require.NoError(t, err)

	rec := doRequest(svc, http.MethodPost, "/api/v1/plans/dedupe", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Plans          []any `json:"plans"`
		OriginalCount  int   `json:"original_count"`
		DuplicateCount int   `json:"duplicate_count"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, len(sample.Plans()), out.OriginalCount)
	assert.Greater(t, out.DuplicateCount, 0, "the sample set carries a language pair")
	assert.Len(t, out.Plans, out.OriginalCount-out.DuplicateCount)
}

func TestTDUsEndpoint(t *testing.T) {
	svc := newTestService(t)

	rec := doRequest(svc, http.MethodGet, "/api/v1/tdus", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(svc, http.MethodGet, "/api/v1/tdus?zip=77002", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		TDU struct {
			Code string `json:"code"`
		} `json:"tdu"`
		Tax struct {
			Rate float64 `json:"rate"`
		} `json:"tax"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "CENTERPOINT", out.TDU.Code)
	assert.InDelta(t, 0.0825, out.Tax.Rate, 1e-9)

	rec = doRequest(svc, http.MethodGet, "/api/v1/tdus?zip=90210", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
