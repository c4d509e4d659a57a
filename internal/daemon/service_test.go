package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/model"
)

type fakeSource struct {
	mu       sync.Mutex
	totals   model.Totals
	expenses []model.Expense
	err      error
}

func (f *fakeSource) Refresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeSource) Totals() model.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totals
}

func (f *fakeSource) Expenses() []model.Expense {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expenses
}

func (f *fakeSource) Categories() []model.Category { return nil }

func (f *fakeSource) set(spent int64, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.NewFromInt(500)
	sp := decimal.NewFromInt(spent)
	f.totals = model.Totals{
		Total:      total,
		Spent:      sp,
		Remaining:  decimal.Max(total.Sub(sp), decimal.Zero),
		Percentage: int(sp.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
	}
	f.expenses = make([]model.Expense, n)
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Budget:     decimal.NewFromInt(500),
		Spent:      decimal.NewFromInt(300),
		Percentage: 60,
		Expenses:   1,
	}
	curr := Snapshot{
		Budget:     decimal.NewFromInt(500),
		Spent:      decimal.RequireFromString("312.5"),
		Percentage: 63,
		Expenses:   2,
	}

	delta := diffSnapshots(prev, curr)
	if !delta.Spent.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("Spent delta = %s, want 12.5", delta.Spent)
	}
	if !delta.Budget.IsZero() {
		t.Fatalf("Budget delta = %s, want 0", delta.Budget)
	}
	if delta.Percentage != 3 {
		t.Fatalf("Percentage delta = %d, want 3", delta.Percentage)
	}
	if delta.Expenses != 1 {
		t.Fatalf("Expenses delta = %d, want 1", delta.Expenses)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots produced a non-zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, &fakeSource{})

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

func TestPollEmitsSnapshotThenDeltas(t *testing.T) {
	src := &fakeSource{}
	src.set(300, 1)
	s := New(Config{}, src)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx) // unchanged, no event
	src.set(400, 1)
	s.pollOnce(ctx)

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	polls := s.pollCount
	s.mu.RUnlock()

	if polls != 3 {
		t.Fatalf("pollCount = %d, want 3", polls)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Type != EventSnapshot || events[1].Type != EventTotalsDelta {
		t.Fatalf("event types = %q, %q", events[0].Type, events[1].Type)
	}
	if !events[1].Delta.Spent.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("delta spent = %s, want 100", events[1].Delta.Spent)
	}
}

func TestPollErrorIsReportedInStatus(t *testing.T) {
	src := &fakeSource{err: errors.New("backend down")}
	s := New(Config{APIURL: "http://x/api"}, src)
	s.pollOnce(context.Background())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	var st Status
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.LastError != "backend down" {
		t.Fatalf("LastError = %q", st.LastError)
	}
	if st.APIURL != "http://x/api" {
		t.Fatalf("APIURL = %q", st.APIURL)
	}
}

func TestStatusAndEventsEndpoints(t *testing.T) {
	src := &fakeSource{}
	src.set(300, 2)
	s := New(Config{}, src)
	s.pollOnce(context.Background())

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	var st Status
	err = json.NewDecoder(resp.Body).Decode(&st)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if st.Summary.Percentage != 60 || st.Summary.Expenses != 2 {
		t.Fatalf("summary = %+v", st.Summary)
	}
	if !st.Summary.Remaining.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("remaining = %s", st.Summary.Remaining)
	}

	resp, err = http.Get(srv.URL + "/v1/events")
	if err != nil {
		t.Fatal(err)
	}
	var events []Event
	err = json.NewDecoder(resp.Body).Decode(&events)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != EventSnapshot {
		t.Fatalf("events = %+v", events)
	}
}

func TestStreamSendsCurrentSnapshot(t *testing.T) {
	src := &fakeSource{}
	src.set(100, 1)
	s := New(Config{}, src)
	s.pollOnce(context.Background())

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(line) != "event: snapshot" {
		t.Fatalf("first line = %q", line)
	}
	line, err = r.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(line, `"percentage":20`) {
		t.Fatalf("data line = %q", line)
	}
}
