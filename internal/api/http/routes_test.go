package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"heatindex-alert/internal/runner"
	"heatindex-alert/internal/store"
)

func newTestApp(results *store.ResultStore) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, results)
	return app
}

func TestChecksLatestEmpty(t *testing.T) {
	app := newTestApp(store.NewResultStore(10))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestChecksLatest(t *testing.T) {
	results := store.NewResultStore(10)
	results.Save(runner.Result{
		Time:    time.Date(2024, 6, 1, 10, 30, 0, 0, time.Local),
		Outcome: runner.OutcomeSuppressedThreshold,
	})
	app := newTestApp(results)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var got runner.Result
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Outcome != runner.OutcomeSuppressedThreshold {
		t.Errorf("unexpected outcome %q", got.Outcome)
	}
}

func TestChecksLimitValidation(t *testing.T) {
	app := newTestApp(store.NewResultStore(10))

	// Out-of-range limit should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks?limit=500", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestChecksList(t *testing.T) {
	results := store.NewResultStore(10)
	for i := 0; i < 3; i++ {
		results.Save(runner.Result{
			Time:    time.Date(2024, 6, 1, 10, 15*i, 0, 0, time.Local),
			Outcome: runner.OutcomeNoReading,
		})
	}
	app := newTestApp(results)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks?limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Checks []runner.Result `json:"checks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Checks) != 2 {
		t.Errorf("expected 2 checks, got %d", len(body.Checks))
	}
}
