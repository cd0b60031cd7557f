package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/trip-booking/internal/database/dbtest"
	loggerPkg "github.com/deppfellow/trip-booking/internal/logger"
	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/deppfellow/trip-booking/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	return &server.Server{
		Config:        dbtest.Config(),
		Logger:        &logger,
		LoggerService: &loggerPkg.LoggerService{},
		DB:            dbtest.NewSQLite(t),
	}
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	h := NewHandler(newTestServer(t))

	var seen []model.ListTripsPayload
	route := Handle(h, func(c echo.Context, p *model.ListTripsPayload) (map[string]int, error) {
		seen = append(seen, *p)
		return map[string]int{"page": p.Page}, nil
	}, http.StatusOK, model.NewListTripsPayload)

	e := echo.New()
	for _, target := range []string{"/?page=3&pageSize=5", "/"} {
		rec := httptest.NewRecorder()
		if err := route(e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)); err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", target, rec.Code)
		}
	}

	if len(seen) != 2 {
		t.Fatalf("handler calls = %d, want 2", len(seen))
	}
	if seen[0].Page != 3 || seen[0].PageSize != 5 {
		t.Errorf("first payload = %+v", seen[0])
	}
	if seen[1].Page != model.DefaultPage || seen[1].PageSize != model.DefaultPageSize {
		t.Errorf("second payload = %+v, want defaults", seen[1])
	}
}

func TestHandle_ValidationErrorSkipsHandler(t *testing.T) {
	h := NewHandler(newTestServer(t))

	called := false
	route := HandleNoContent(h, func(c echo.Context, p *model.DeleteClientPayload) error {
		called = true
		return nil
	}, http.StatusNoContent, func() *model.DeleteClientPayload { return &model.DeleteClientPayload{} })

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("idClient")
	c.SetParamValues("0")

	if err := route(c); err == nil {
		t.Fatal("expected validation error for idClient=0")
	}
	if called {
		t.Error("handler must not run after failed validation")
	}
}

func TestCheckHealth_DatabaseDown(t *testing.T) {
	s := newTestServer(t)
	if err := s.DB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	if err := NewHealthHandler(s).CheckHealth(c); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
