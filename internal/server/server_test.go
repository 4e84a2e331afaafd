package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/app"
	"github.com/ternarybob/dartview/internal/common"
	"github.com/ternarybob/dartview/internal/handlers"
	"github.com/ternarybob/dartview/internal/models"
	"github.com/ternarybob/dartview/internal/opendart"
	"github.com/ternarybob/dartview/internal/services/llm"
	"github.com/ternarybob/dartview/internal/services/search"
	"github.com/ternarybob/dartview/internal/storage/sqlite"
)

// stubGenerator implements llm.Generator with a fixed reply or error
type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) GenerateContent(ctx context.Context, req *llm.ContentRequest) (*llm.ContentResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &llm.ContentResponse{Text: g.text, Provider: llm.ProviderGemini}, nil
}

// fakeOpenDART answers fnlttSinglAcnt.json with revenue for 2022 and status 013 otherwise
func fakeOpenDART(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("bsns_year") != "2022" {
			fmt.Fprint(w, `{"status":"013","message":"조회된 데이타가 없습니다."}`)
			return
		}
		fmt.Fprint(w, `{"status":"000","message":"정상","list":[
			{"corp_code":"00126380","bsns_year":"2022","reprt_code":"11011","fs_div":"CFS","sj_div":"IS","account_nm":"매출액","thstrm_amount":"302,231,400,000,000"},
			{"corp_code":"00126380","bsns_year":"2022","reprt_code":"11011","fs_div":"CFS","sj_div":"BS","account_nm":"자산총계","thstrm_amount":"448,424,500,000,000"},
			{"corp_code":"00126380","bsns_year":"2022","reprt_code":"11011","fs_div":"CFS","sj_div":"BS","account_nm":"부채총계","thstrm_amount":"93,674,900,000,000"}
		]}`)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupServer(t *testing.T, generator llm.Generator) *Server {
	t.Helper()
	logger := arbor.NewLogger()

	config := common.NewDefaultConfig()
	config.Storage.SQLite.Path = filepath.Join(t.TempDir(), "companies.db")
	config.Web.Dir = t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(config.Web.Dir, "index.html"), []byte(`<html><body>dartview {{.Version}}</body></html>`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(config.Web.Dir, "static"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.Web.Dir, "static", "script.js"), []byte(`console.log("ok")`), 0644))

	writer, err := sqlite.CreateSQLiteDB(logger, &config.Storage.SQLite)
	require.NoError(t, err)
	_, err = sqlite.NewCompanyLoader(writer, logger).Rebuild(context.Background(), []*models.Company{
		{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930", ModifyDate: "20240315"},
		{CorpCode: "00126371", CorpName: "삼성전기", StockCode: "009150", ModifyDate: "20240301"},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	db, err := sqlite.NewSQLiteDB(logger, &config.Storage.SQLite)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storage := sqlite.NewCompanyStorage(db, logger)
	fetcher := opendart.NewClient("test-key", opendart.WithBaseURL(fakeOpenDART(t).URL), opendart.WithLogger(logger))
	narrative := llm.NewNarrativeService(generator, "", logger)

	application := &app.App{
		Config:           config,
		Logger:           logger,
		DB:               db,
		CompanyStorage:   storage,
		SearchService:    search.NewService(storage, logger),
		StatementFetcher: fetcher,
		NarrativeService: narrative,
		APIHandler:       handlers.NewAPIHandler(storage, logger),
		CompanyHandler:   handlers.NewCompanyHandler(search.NewService(storage, logger), storage, logger),
		FinancialHandler: handlers.NewFinancialHandler(storage, fetcher, logger),
		AnalysisHandler:  handlers.NewAnalysisHandler(storage, fetcher, narrative, logger),
		PageHandler:      handlers.NewPageHandler(config.Web.Dir, logger),
	}

	return New(application)
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNew_ServerTimeouts(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	assert.Equal(t, "0.0.0.0:5000", s.server.Addr)
	assert.Equal(t, 15*time.Second, s.server.ReadTimeout)
	assert.Equal(t, 90*time.Second, s.server.WriteTimeout)
	assert.Equal(t, 60*time.Second, s.server.IdleTimeout)

	s.app.Config.Server.Host = "127.0.0.1"
	s.app.Config.Server.Port = 8088
	s.app.Config.Server.WriteTimeout = "2m"
	s.app.Config.Server.IdleTimeout = "not-a-duration"
	s = New(s.app)

	assert.Equal(t, "127.0.0.1:8088", s.server.Addr)
	assert.Equal(t, 2*time.Minute, s.server.WriteTimeout)
	assert.Equal(t, defaultIdleTimeout, s.server.IdleTimeout)
}

func TestRoutes_NotFound(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	for _, target := range []string{"/nope", "/api/unknown", "/api/company"} {
		rec := serve(s, http.MethodGet, target)

		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", target, rec.Code)
		}
		body := decode(t, rec)
		if body["message"] != "요청한 리소스를 찾을 수 없습니다." {
			t.Errorf("%s: unexpected message %v", target, body["message"])
		}
		if body["success"] != false {
			t.Errorf("%s: expected success false", target)
		}
	}
}

func TestRoutes_Health(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	rec := serve(s, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(2), body["total_companies"])
}

func TestRoutes_SearchAndLookup(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	rec := serve(s, http.MethodGet, "/api/search?q=%EC%82%BC%EC%84%B1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["count"])

	rec = serve(s, http.MethodGet, "/api/company/UNKNOWN123")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "해당 회사를 찾을 수 없습니다.", decode(t, rec)["message"])

	rec = serve(s, http.MethodGet, "/api/company/00126380")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "삼성전자", decode(t, rec)["data"].(map[string]interface{})["corp_name"])
}

func TestRoutes_FinancialMultiYear(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	rec := serve(s, http.MethodGet, "/api/financial/multi/00126380?years=2017,2018,2019,2020,2021,2022")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "최대 5년까지만 조회 가능합니다.", decode(t, rec)["message"])

	rec = serve(s, http.MethodGet, "/api/financial/multi/00126380?years=2021,2022")
	require.Equal(t, http.StatusOK, rec.Code)
	yearsData := decode(t, rec)["data"].(map[string]interface{})["years_data"].(map[string]interface{})
	assert.Nil(t, yearsData["2021"])
	assert.NotNil(t, yearsData["2022"])

	rec = serve(s, http.MethodGet, "/api/financial/00126380?reprt_code=99999")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_AnalysisProviderFailure(t *testing.T) {
	s := setupServer(t, &stubGenerator{err: errors.New("quota exhausted")})

	rec := serve(s, http.MethodGet, "/api/ai-analysis/00126380?years=2021,2022")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "죄송합니다. AI 분석 중 오류가 발생했습니다.", body["message"])
	assert.Equal(t, "quota exhausted", body["error"])
}

func TestRoutes_AnalysisSuccess(t *testing.T) {
	s := setupServer(t, &stubGenerator{text: "**양호**"})

	rec := serve(s, http.MethodGet, "/api/ai-analysis/00126380?years=2021,2022")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "**양호**", data["analysis"])
	assert.Contains(t, data["analysis_html"], "<strong>양호</strong>")
}

func TestMiddleware_RequestID(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	rec := serve(s, http.MethodGet, "/health")
	id := rec.Header().Get(RequestIDHeader)
	assert.True(t, strings.HasPrefix(id, "req_"), "got %q", id)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied", rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_CORS(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	rec := serve(s, http.MethodOptions, "/api/search")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(s, http.MethodGet, "/api/stats")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_Recovery(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	handler := s.withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "서버 내부 오류가 발생했습니다.", body["message"])
}

func TestRoutes_PageAndStatic(t *testing.T) {
	s := setupServer(t, &stubGenerator{})

	rec := serve(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dartview "+common.GetVersion())

	rec = serve(s, http.MethodGet, "/static/script.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `console.log("ok")`)

	rec = serve(s, http.MethodGet, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
