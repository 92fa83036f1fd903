// Package daemon provides the long-running background forecast service:
// it rebuilds the forecast on a cron schedule and serves the latest
// results over a local HTTP API with an SSE stream for dashboards.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	CronSpec     string
	EventsBuffer int
}

// RebuildFunc recomputes every scenario's forecast from current data.
type RebuildFunc func() (map[string]*forecast.Result, error)

// Snapshot is a compact per-scenario state for status/event payloads.
type Snapshot struct {
	ScenarioID    string    `json:"scenario_id"`
	AsOf          time.Time `json:"as_of"`
	WeeklyExpense float64   `json:"weekly_expense"`
	BurnRate      float64   `json:"burn_rate"`
	RunwayWeek    *int      `json:"runway_week,omitempty"`
	FinalBalance  float64   `json:"final_balance"`
	Flags         []string  `json:"flags"`
	Warnings      int       `json:"warnings"`
}

// Event is emitted whenever the forecast is rebuilt.
type Event struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Scenarios []Snapshot `json:"scenarios"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time  `json:"started_at"`
	LastRebuildAt   time.Time  `json:"last_rebuild_at"`
	RebuildCount    int64      `json:"rebuild_count"`
	CronSpec        string     `json:"cron_spec"`
	Scenarios       []Snapshot `json:"scenarios"`
	LastError       string     `json:"last_error,omitempty"`
	EventCount      int        `json:"event_count"`
	SubscriberCount int        `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	rebuild RebuildFunc
	log     *logrus.Logger

	mu            sync.RWMutex
	startedAt     time.Time
	lastRebuildAt time.Time
	rebuildCount  int64
	lastError     string
	results       map[string]*forecast.Result
	nextEventID   int64
	events        []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service.
func New(cfg Config, rebuild RebuildFunc, log *logrus.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7381"
	}
	if cfg.CronSpec == "" {
		cfg.CronSpec = "0 6 * * *"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 50
	}
	if log == nil {
		log = logrus.New()
	}

	return &Service{
		cfg:       cfg,
		rebuild:   rebuild,
		log:       log,
		startedAt: time.Now(),
		results:   make(map[string]*forecast.Result),
		subs:      make(map[int]chan Event),
	}
}

// Run starts the HTTP endpoints and cron scheduler until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/forecast", s.handleForecast)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed an initial forecast so status is useful immediately.
	s.rebuildOnce()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(s.cfg.CronSpec, s.rebuildOnce); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.cfg.CronSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	s.log.WithFields(logrus.Fields{
		"addr": s.cfg.Addr,
		"cron": s.cfg.CronSpec,
	}).Info("daemon started")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

func (s *Service) rebuildOnce() {
	results, err := s.rebuild()
	now := time.Now()

	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastRebuildAt = now
		s.rebuildCount++
		s.mu.Unlock()
		s.log.WithError(err).Error("forecast rebuild failed")
		return
	}

	s.mu.Lock()
	s.results = results
	s.lastRebuildAt = now
	s.rebuildCount++
	s.lastError = ""
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      "forecast_rebuilt",
		Timestamp: now,
		Scenarios: snapshotsLocked(results),
	}
	s.mu.Unlock()

	s.publishEvent(ev)
	s.log.WithField("scenarios", len(results)).Info("forecast rebuilt")
}

func snapshotsLocked(results map[string]*forecast.Result) []Snapshot {
	out := make([]Snapshot, 0, len(results))
	for _, id := range sortedIDs(results) {
		r := results[id]
		snap := Snapshot{
			ScenarioID:    r.ScenarioID,
			AsOf:          r.AsOf,
			WeeklyExpense: r.WeeklyExpense,
			BurnRate:      r.BurnRate,
			RunwayWeek:    r.RunwayWeek,
			Flags:         flagStrings(r.Flags),
			Warnings:      len(r.Warnings),
		}
		if n := len(r.Rows); n > 0 {
			snap.FinalBalance = r.Rows[n-1].EndingBalance
		}
		out = append(out, snap)
	}
	return out
}

func flagStrings(flags []model.RiskFlag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}

func sortedIDs(results map[string]*forecast.Result) []string {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastRebuildAt:   s.lastRebuildAt,
		RebuildCount:    s.rebuildCount,
		CronSpec:        s.cfg.CronSpec,
		Scenarios:       snapshotsLocked(s.results),
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleForecast(w http.ResponseWriter, r *http.Request) {
	scenarioID := r.URL.Query().Get("scenario")
	if scenarioID == "" {
		scenarioID = "base"
	}

	s.mu.RLock()
	result, ok := s.results[scenarioID]
	s.mu.RUnlock()

	if !ok {
		http.Error(w, fmt.Sprintf("no forecast for scenario %q", scenarioID), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send the current state immediately.
	s.mu.RLock()
	current := Event{
		Type:      "forecast_rebuilt",
		Timestamp: time.Now(),
		Scenarios: snapshotsLocked(s.results),
	}
	s.mu.RUnlock()
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
