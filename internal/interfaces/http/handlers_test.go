package http

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/expense-journal/internal/application/service"
	"github.com/garyjia/expense-journal/internal/packager"
	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/voucher"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	server *Server
	store  *settings.Store
}

func newTestEnv(t *testing.T, mutate func(*ServerConfig)) *testEnv {
	t.Helper()

	store := settings.NewStore(t.TempDir()+"/settings.yaml", zap.NewNop())
	_, err := store.Load()
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 10, 14, 9, 30, 5, 0, time.UTC) }
	conversion := service.NewConversionService(
		store,
		voucher.NewConverter(zap.NewNop()),
		packager.New(zap.NewNop()),
		clock,
		nopLogger{},
	)

	cfg := DefaultServerConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	return &testEnv{
		server: NewServer(cfg, conversion, service.NewSettingsService(store, nopLogger{}), nopLogger{}),
		store:  store,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const sampleCSV = "伝票No,,日付,勘定科目名,補助科目名,負担部門(選択必須),自由記入欄,税率,小計,支払方法,区間,カード,交通機関,伝票種別\n" +
	"1,,2025-10-01,旅費交通費,,営業部,打合せ,課対仕入込10%,1000,現金,,,,経費精算\n" +
	"2,,2025-10-02,旅費交通費,,営業部,会食,課対仕入込10%,5000,法人カード,,AMEX,,経費精算\n"

func TestHandlers_Pages(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name     string
		path     string
		contains []string
	}{
		{name: "index", path: "/", contains: []string{"変換してダウンロード", "v2.3", "②データ貼付"}},
		{name: "manual", path: "/manual", contains: []string{"使い方マニュアル", "merged_all_freee.csv"}},
		{name: "settings", path: "/settings", contains: []string{`name="h_amount" value="小計"`, `name="amex_credit_sub" value="AMEX"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHandlers_HealthCheck(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Data.(map[string]interface{})["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestHandlers_SaveSettings(t *testing.T) {
	t.Run("saves submitted fields and redirects", func(t *testing.T) {
		env := newTestEnv(t, nil)
		form := url.Values{
			"h_amount":           {" 金額 "},
			"kotsuhi_credit_sub": {"通勤"},
		}
		req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := env.do(req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/settings", w.Header().Get("Location"))

		doc := env.store.Current()
		assert.Equal(t, "金額", doc.SourceHeaders.Amount)
		assert.Equal(t, "通勤", doc.CreditRules[settings.KeyCommute].SubAccount)
		assert.Equal(t, settings.Default().SourceHeaders.Date, doc.SourceHeaders.Date)
		assert.Equal(t, settings.Default().CreditRules[settings.KeyCard], doc.CreditRules[settings.KeyCard])
	})

	t.Run("rejects blank credit account", func(t *testing.T) {
		env := newTestEnv(t, nil)
		form := url.Values{"amex_credit_acct": {""}}
		req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := env.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, CategorySettingsError, resp.Category)
		assert.Equal(t, "未払金", env.store.Current().CreditRules[settings.KeyCard].Account)
	})
}

func TestHandlers_Convert(t *testing.T) {
	t.Run("returns zip archive", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := env.do(uploadRequest(t, "export.csv", []byte(sampleCSV)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="freee_journals_20251014_093005.zip"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "AMEX-20251014-001,KEIHI-20251014-002", w.Header().Get(VoucherIDsHeader))

		zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
		require.NoError(t, err)
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"amex_journal_freee.csv", "keihi_journal_freee.csv", packager.MergedFileName}, names)
	})

	t.Run("parse failure is a bad request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := env.do(uploadRequest(t, "export.xlsx", []byte("not a workbook")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, CategoryParseError, resp.Category)
		assert.Contains(t, resp.Error, "export.xlsx")
	})

	t.Run("missing file field", func(t *testing.T) {
		env := newTestEnv(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := env.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CategoryInvalidUpload, decodeResponse(t, w).Category)
	})

	t.Run("upload over the size limit is rejected", func(t *testing.T) {
		env := newTestEnv(t, func(cfg *ServerConfig) { cfg.MaxUploadBytes = 64 })

		w := env.do(uploadRequest(t, "export.csv", bytes.Repeat([]byte("a,b\n"), 100)))

		assert.Contains(t, []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge}, w.Code)
		assert.Equal(t, CategoryInvalidUpload, decodeResponse(t, w).Category)
	})
}

func TestMiddleware(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("request id is propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "req-123")

		w := env.do(req)

		assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodOptions, "/convert", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

		exposed := w.Header().Get("Access-Control-Expose-Headers")
		assert.Contains(t, exposed, "Content-Disposition")
		assert.Contains(t, exposed, VoucherIDsHeader)
	})
}
