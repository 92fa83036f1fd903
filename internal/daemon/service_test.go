package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedResults() map[string]*forecast.Result {
	week3 := 3
	return map[string]*forecast.Result{
		"base": {
			ScenarioID:    "base",
			AsOf:          time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			WeeklyExpense: 105137,
			BurnRate:      105137,
			RunwayWeek:    &week3,
			Flags:         []model.RiskFlag{model.RiskShortRunway, model.RiskNegativeFinal},
			Rows: []model.WeeklyForecastRow{
				{WeekNumber: 1, EndingBalance: 144863},
				{WeekNumber: 2, EndingBalance: 39726},
				{WeekNumber: 3, EndingBalance: -65411},
			},
		},
	}
}

func TestRebuildOnceUpdatesState(t *testing.T) {
	s := New(Config{}, func() (map[string]*forecast.Result, error) {
		return fixedResults(), nil
	}, quietLogger())

	s.rebuildOnce()

	status := s.snapshotStatus()
	if status.RebuildCount != 1 {
		t.Fatalf("rebuild count %d, want 1", status.RebuildCount)
	}
	if len(status.Scenarios) != 1 {
		t.Fatalf("got %d scenarios, want 1", len(status.Scenarios))
	}
	snap := status.Scenarios[0]
	if snap.ScenarioID != "base" {
		t.Errorf("scenario %q, want base", snap.ScenarioID)
	}
	if snap.RunwayWeek == nil || *snap.RunwayWeek != 3 {
		t.Errorf("runway week %v, want 3", snap.RunwayWeek)
	}
	if snap.FinalBalance != -65411 {
		t.Errorf("final balance %.2f, want -65411", snap.FinalBalance)
	}
	if status.EventCount != 1 {
		t.Errorf("event count %d, want 1", status.EventCount)
	}
}

func TestRebuildErrorKeepsLastGoodForecast(t *testing.T) {
	calls := 0
	s := New(Config{}, func() (map[string]*forecast.Result, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("db locked")
		}
		return fixedResults(), nil
	}, quietLogger())

	s.rebuildOnce()
	s.rebuildOnce()

	status := s.snapshotStatus()
	if status.LastError != "db locked" {
		t.Errorf("last error %q, want db locked", status.LastError)
	}
	if len(status.Scenarios) != 1 {
		t.Fatalf("error rebuild dropped the previous forecast")
	}
}

func TestHandleForecast(t *testing.T) {
	s := New(Config{}, func() (map[string]*forecast.Result, error) {
		return fixedResults(), nil
	}, quietLogger())
	s.rebuildOnce()

	rec := httptest.NewRecorder()
	s.handleForecast(rec, httptest.NewRequest(http.MethodGet, "/v1/forecast?scenario=base", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var result forecast.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.ScenarioID != "base" {
		t.Errorf("scenario %q, want base", result.ScenarioID)
	}

	rec = httptest.NewRecorder()
	s.handleForecast(rec, httptest.NewRequest(http.MethodGet, "/v1/forecast?scenario=nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown scenario status %d, want 404", rec.Code)
	}
}
