// Package daemon serves the latest saastrack report over a local HTTP API
// and streams an event whenever the workspace changes.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/metrics"
	"github.com/theirongolddev/saastrack/internal/model"
	"github.com/theirongolddev/saastrack/internal/validate"
)

// Event types.
const (
	EventSnapshot = "snapshot"
	EventReport   = "report"
)

// Workspace is the snapshot source the daemon polls.
type Workspace interface {
	Revision() (string, error)
	LoadSnapshot() (model.BusinessSnapshot, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Heuristics   config.Heuristics
}

// Summary is a compact report used in status and event payloads.
type Summary struct {
	At              time.Time          `json:"at"`
	Revision        string             `json:"revision"`
	Name            string             `json:"name"`
	CurrentUsers    int                `json:"current_users"`
	GoalUsers       int                `json:"goal_users"`
	MRR             float64            `json:"mrr"`
	ARR             float64            `json:"arr"`
	UserProgress    float64            `json:"user_progress"`
	RevenueProgress float64            `json:"revenue_progress"`
	LTVCACRatio     float64            `json:"ltv_cac_ratio"`
	NRR             float64            `json:"nrr"`
	GrowthStatus    model.GrowthStatus `json:"growth_status"`
	ChurnStatus     model.ChurnStatus  `json:"churn_status"`
	Complete        bool               `json:"complete"`
}

// Delta captures summary changes between revisions.
type Delta struct {
	Users        int     `json:"users"`
	MRR          float64 `json:"mrr"`
	UserProgress float64 `json:"user_progress"`
	NRR          float64 `json:"nrr"`
}

// Event is emitted whenever the workspace revision changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
	Delta     Delta     `json:"delta"`
}

// Report is served at /v1/report.
type Report struct {
	Revision string                 `json:"revision"`
	Snapshot model.BusinessSnapshot `json:"snapshot"`
	Metrics  model.MetricsReport    `json:"metrics"`
	Missing  []string               `json:"missing,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Summary   `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	ws      Workspace
	engine  metrics.Engine
	log     zerolog.Logger
	reg     *prometheus.Registry
	metrics *reportMetrics

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	revision    string
	hasReport   bool
	report      Report
	summary     Summary
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service reading from ws.
func New(cfg Config, ws Workspace, log zerolog.Logger) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Heuristics == (config.Heuristics{}) {
		cfg.Heuristics = config.DefaultHeuristics()
	}

	reg := prometheus.NewRegistry()
	return &Service{
		cfg:       cfg,
		ws:        ws,
		engine:    metrics.New(cfg.Heuristics),
		log:       log,
		reg:       reg,
		metrics:   newReportMetrics(reg),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}).ServeHTTP)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/report", s.handleReport)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Dur("interval", s.cfg.Interval).Msg("daemon listening")

	// Seed the report so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// pollOnce recomputes the report when the workspace revision has changed.
func (s *Service) pollOnce() {
	s.metrics.polls.Inc()
	now := time.Now()

	rev, err := s.ws.Revision()
	if err != nil {
		s.pollFailed(now, err)
		return
	}

	s.mu.RLock()
	unchanged := s.hasReport && rev == s.revision
	s.mu.RUnlock()
	if unchanged {
		s.mu.Lock()
		s.lastPollAt = now
		s.pollCount++
		s.lastError = ""
		s.mu.Unlock()
		return
	}

	snap, err := s.ws.LoadSnapshot()
	if err != nil {
		s.pollFailed(now, err)
		return
	}

	mr := s.engine.Compute(snap)
	res := validate.Snapshot(snap)
	report := Report{Revision: rev, Snapshot: snap, Metrics: mr, Missing: res.MissingNames()}
	summary := summarize(now, rev, snap, mr, res.Complete())
	s.metrics.observe(mr)

	s.mu.Lock()
	prev := s.summary
	first := !s.hasReport

	s.hasReport = true
	s.revision = rev
	s.report = report
	s.summary = summary
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      EventReport,
		Timestamp: now,
		Summary:   summary,
	}
	if first {
		ev.Type = EventSnapshot
	} else {
		ev.Delta = diffSummaries(prev, summary)
	}
	s.mu.Unlock()

	s.log.Debug().Str("revision", rev).Str("event", ev.Type).Msg("workspace changed")
	s.publishEvent(ev)
}

func (s *Service) pollFailed(at time.Time, err error) {
	s.metrics.pollErrors.Inc()
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = at
	s.pollCount++
	s.mu.Unlock()
	s.log.Error().Err(err).Msg("daemon poll failed")
}

func summarize(at time.Time, rev string, snap model.BusinessSnapshot, r model.MetricsReport, complete bool) Summary {
	return Summary{
		At:              at,
		Revision:        rev,
		Name:            snap.Name,
		CurrentUsers:    snap.CurrentUsers,
		GoalUsers:       snap.GoalUsers,
		MRR:             r.MonthlyRecurringRevenue,
		ARR:             r.AnnualRecurringRevenue,
		UserProgress:    r.UserProgress,
		RevenueProgress: r.RevenueProgress,
		LTVCACRatio:     r.LTVCACRatio,
		NRR:             r.NetRevenueRetention,
		GrowthStatus:    r.GrowthStatus,
		ChurnStatus:     r.ChurnStatus,
		Complete:        complete,
	}
}

func diffSummaries(prev, curr Summary) Delta {
	return Delta{
		Users:        curr.CurrentUsers - prev.CurrentUsers,
		MRR:          curr.MRR - prev.MRR,
		UserProgress: curr.UserProgress - prev.UserProgress,
		NRR:          curr.NRR - prev.NRR,
	}
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
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.summary,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// writeJSON encodes v before writing the header. A value that cannot be
// encoded, such as a non-finite float, yields a 500 with an error body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(map[string]string{"error": err.Error()})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	report, ok := s.report, s.hasReport
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no report yet"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
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

	// Send the current summary immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Summary:   s.snapshotStatus().Summary,
	})
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
