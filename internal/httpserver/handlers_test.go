package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/PiruU/web-import-export/internal/service/export"
	"github.com/gin-gonic/gin"
)

type stubImporter struct {
	nCustomers int
	nPurchases int
	err        error
}

func (s *stubImporter) Run(_ context.Context, _, _ string) (int, int, error) {
	return s.nCustomers, s.nPurchases, s.err
}

type stubBuilder struct {
	doc domain.ExportDocument
	err error
}

func (s *stubBuilder) BuildDocument(_ context.Context) (domain.ExportDocument, error) {
	return s.doc, s.err
}

type stubForwarder struct {
	status  int
	err     error
	lastURL string
}

func (s *stubForwarder) Forward(_ context.Context, targetURL string, _ time.Duration, _ domain.ExportDocument) (int, error) {
	s.lastURL = targetURL
	return s.status, s.err
}

func testRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(log.New(os.Stdout, "", 0), nil, deps)
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestImportHandler_Success(t *testing.T) {
	router := testRouter(Deps{Importer: &stubImporter{nCustomers: 3, nPurchases: 5}})

	rec := postJSON(router, "/api/import_csv", `{"customers":"/data/customers.csv","purchases":"/data/purchases.csv"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Status     int `json:"status"`
		NCustomers int `json:"n_customers"`
		NPurchases int `json:"n_purchases"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != 0 || resp.NCustomers != 3 || resp.NPurchases != 5 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestImportHandler_MissingBodyField(t *testing.T) {
	router := testRouter(Deps{Importer: &stubImporter{}})

	rec := postJSON(router, "/api/import_csv", `{"customers":"/data/customers.csv"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestImportHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"parse", &domain.ParseError{Line: 2, Field: "quantity", Reason: "not an integer"}, http.StatusBadRequest},
		{"constraint", domain.ErrConstraint, http.StatusBadRequest},
		{"store", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(Deps{Importer: &stubImporter{err: tc.err}})
			rec := postJSON(router, "/api/import_csv", `{"customers":"a.csv","purchases":"b.csv"}`)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestExportHandler_Success(t *testing.T) {
	doc := domain.ExportDocument{Customers: []domain.ExportCustomer{
		{CustomerID: 1, Purchases: []domain.ExportPurchase{{PurchaseID: "ord-1"}, {PurchaseID: "ord-2"}}},
		{CustomerID: 2, Purchases: []domain.ExportPurchase{}},
	}}
	forwarder := &stubForwarder{status: http.StatusOK}
	router := testRouter(Deps{
		Export:               &stubBuilder{doc: doc},
		Forwarder:            forwarder,
		DefaultExportTimeout: 15 * time.Second,
	})

	rec := postJSON(router, "/api/export_customers", `{"target_url":"http://target.example/api/receive_export","timeout":5}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Status       int `json:"status"`
		Customers    int `json:"customers"`
		Purchases    int `json:"purchases"`
		TargetStatus int `json:"target_status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Customers != 2 || resp.Purchases != 2 || resp.TargetStatus != http.StatusOK {
		t.Fatalf("unexpected response %+v", resp)
	}
	if forwarder.lastURL != "http://target.example/api/receive_export" {
		t.Fatalf("unexpected target url %q", forwarder.lastURL)
	}
}

func TestExportHandler_InvalidTargetURL(t *testing.T) {
	router := testRouter(Deps{Export: &stubBuilder{}, Forwarder: &stubForwarder{}})

	rec := postJSON(router, "/api/export_customers", `{"target_url":"not-a-url"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestExportHandler_UpstreamFailure(t *testing.T) {
	router := testRouter(Deps{
		Export:    &stubBuilder{},
		Forwarder: &stubForwarder{status: http.StatusBadGateway, err: export.ErrUpstream},
	})

	rec := postJSON(router, "/api/export_customers", `{"target_url":"http://target.example/hook"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestExportHandler_StoreFailure(t *testing.T) {
	router := testRouter(Deps{
		Export:    &stubBuilder{err: errors.New("db down")},
		Forwarder: &stubForwarder{},
	})

	rec := postJSON(router, "/api/export_customers", `{"target_url":"http://target.example/hook"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestReceiveExportHandler_PrettyPrintsJSON(t *testing.T) {
	router := testRouter(Deps{})

	rec := postJSON(router, "/api/receive_export", `{"customers":[{"customer_id":1}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "&#34;customer_id&#34;: 1") {
		t.Fatalf("expected escaped pretty JSON, got %s", rec.Body.String())
	}
}

func TestReceiveExportHandler_EscapesNonJSON(t *testing.T) {
	router := testRouter(Deps{})

	rec := postJSON(router, "/api/receive_export", `<script>alert(1)</script>`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>alert") {
		t.Fatalf("expected escaped body, got %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %s", body)
	}
}
