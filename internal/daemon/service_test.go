package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/saastrack/internal/model"
)

type fakeWorkspace struct {
	mu    sync.Mutex
	rev   string
	snap  model.BusinessSnapshot
	err   error
	loads int
}

func (f *fakeWorkspace) Revision() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rev, f.err
}

func (f *fakeWorkspace) LoadSnapshot() (model.BusinessSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.snap, f.err
}

func (f *fakeWorkspace) set(rev string, snap model.BusinessSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rev = rev
	f.snap = snap
}

func acme(users int) model.BusinessSnapshot {
	return model.BusinessSnapshot{
		Name:           "Acme",
		CurrentUsers:   users,
		GoalUsers:      1000,
		MonthlyRevenue: 500,
		RevenueGoal:    5000,
		ChurnRate:      5,
		GrowthRate:     10,
	}
}

func newTestService(ws Workspace, buffer int) *Service {
	return New(Config{Interval: 10 * time.Second, EventsBuffer: buffer}, ws, zerolog.Nop())
}

func TestDiffSummaries(t *testing.T) {
	prev := Summary{CurrentUsers: 100, MRR: 500, UserProgress: 10, NRR: 105}
	curr := Summary{CurrentUsers: 130, MRR: 620.5, UserProgress: 13, NRR: 103}

	d := diffSummaries(prev, curr)
	if d.Users != 30 {
		t.Fatalf("Users delta = %d, want 30", d.Users)
	}
	if math.Abs(d.MRR-120.5) > 1e-9 {
		t.Fatalf("MRR delta = %.2f, want 120.50", d.MRR)
	}
	if math.Abs(d.UserProgress-3) > 1e-9 {
		t.Fatalf("UserProgress delta = %.2f, want 3", d.UserProgress)
	}
	if math.Abs(d.NRR+2) > 1e-9 {
		t.Fatalf("NRR delta = %.2f, want -2", d.NRR)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := newTestService(&fakeWorkspace{}, 2)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnce_PublishesOnRevisionChange(t *testing.T) {
	ws := &fakeWorkspace{}
	ws.set("rev-1", acme(100))
	s := newTestService(ws, 10)

	s.pollOnce()
	s.pollOnce()
	ws.set("rev-2", acme(150))
	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].Type != EventSnapshot {
		t.Fatalf("first event type = %q, want %q", s.events[0].Type, EventSnapshot)
	}
	if s.events[1].Type != EventReport {
		t.Fatalf("second event type = %q, want %q", s.events[1].Type, EventReport)
	}
	if s.events[1].Delta.Users != 50 {
		t.Fatalf("delta users = %d, want 50", s.events[1].Delta.Users)
	}
	if ws.loads != 2 {
		t.Fatalf("snapshot loads = %d, want 2 (unchanged revision must not reload)", ws.loads)
	}
	if s.pollCount != 3 {
		t.Fatalf("poll count = %d, want 3", s.pollCount)
	}
	if s.report.Revision != "rev-2" || s.report.Metrics.RevenuePerUser == 0 {
		t.Fatalf("report not refreshed: %+v", s.report)
	}
}

func TestPollOnce_RecordsErrors(t *testing.T) {
	ws := &fakeWorkspace{err: errors.New("database is locked")}
	s := newTestService(ws, 10)

	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError != "database is locked" {
		t.Fatalf("last error = %q", st.LastError)
	}
	if st.EventCount != 0 {
		t.Fatalf("event count = %d, want 0", st.EventCount)
	}
}

func TestHandler_Routes(t *testing.T) {
	ws := &fakeWorkspace{}
	ws.set("rev-1", acme(100))
	s := newTestService(ws, 10)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/report")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("report before poll: status %d, want 503", resp.StatusCode)
	}

	s.pollOnce()

	resp, err = http.Get(srv.URL + "/v1/report")
	if err != nil {
		t.Fatal(err)
	}
	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	_ = resp.Body.Close()
	if report.Revision != "rev-1" || report.Metrics.LTVCACRatio != 120 {
		t.Fatalf("report = %+v", report)
	}

	resp, err = http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	_ = resp.Body.Close()
	if st.Summary.Name != "Acme" || !st.Summary.Complete {
		t.Fatalf("status summary = %+v", st.Summary)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), `saastrack_kpi{metric="ltv_cac_ratio"} 120`) {
		t.Fatalf("metrics output missing ltv_cac_ratio gauge:\n%s", body)
	}
	if !strings.Contains(string(body), `saastrack_progress{metric="users"} 10`) {
		t.Fatalf("metrics output missing users progress gauge")
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}
}

func TestWriteJSON_NonFiniteIsServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, Summary{ARR: math.Inf(1)})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q is not JSON: %v", rec.Body.String(), err)
	}
	if body["error"] == "" {
		t.Fatalf("body = %v, want an error message", body)
	}

	rec = httptest.NewRecorder()
	writeJSON(rec, http.StatusAccepted, Summary{Name: "Acme"})
	if rec.Code != http.StatusAccepted || !strings.Contains(rec.Body.String(), `"name":"Acme"`) {
		t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
	}
}
