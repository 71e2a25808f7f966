package echoapi

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/catalog"
	"github.com/mnogodumalon/kurs96/core/dashboard"
	"github.com/mnogodumalon/kurs96/core/record"
	dummystore "github.com/mnogodumalon/kurs96/storage/dummy"
)

var testApps = catalog.AppIDs{
	Lecturers:    "app-lecturers",
	Participants: "app-participants",
	Rooms:        "app-rooms",
	Courses:      "app-courses",
	Enrollments:  "app-enrollments",
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestServer(t *testing.T, store record.Store) (Server, *catalog.Service) {
	t.Helper()

	validate, translator := core.NewValidator()
	catalog.RegisterValidators(validate, translator)

	refs := record.RefMaker{Base: "https://my.living-apps.de"}
	catalogSvc := catalog.NewService(store, refs, testApps, validate)

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           &core.Config{TestMode: true},
		Logger:         nopLogger{},
		Translator:     translator,
		CatalogSvc:     catalogSvc,
		DashboardSvc:   dashboard.NewService(catalogSvc),
	})
	return srv, catalogSvc
}

func newDummyServer(t *testing.T) (Server, *catalog.Service) {
	return newTestServer(t, dummystore.Open())
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	wantCode int
	// extra per-test response assertions, may be nil
	extraAssertions func(t *testing.T, resp *httptest.ResponseRecorder)
}

func (tt httpTest) run(t *testing.T, srv Server) {
	t.Helper()

	resp := do(srv, tt.method, tt.path, tt.body)
	assert.Equal(t, tt.wantCode, resp.Code)
	if tt.extraAssertions != nil {
		tt.extraAssertions(t, resp)
	}
}

func do(srv Server, method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	return resp
}

// failingStore turns every call into a transport failure.
type failingStore struct{}

var _ record.Store = failingStore{}

func (failingStore) err() error {
	return record.NewTransportError("GET https://my.living-apps.de", context.DeadlineExceeded)
}

func (s failingStore) List(context.Context, string) ([]record.Record, error) {
	return nil, s.err()
}

func (s failingStore) Get(context.Context, string, string) (record.Record, error) {
	return record.Record{}, s.err()
}

func (s failingStore) Create(context.Context, string, map[string]interface{}) (record.Record, error) {
	return record.Record{}, s.err()
}

func (s failingStore) Update(context.Context, string, string, map[string]interface{}) error {
	return s.err()
}

func (s failingStore) Delete(context.Context, string, string) error { return s.err() }
