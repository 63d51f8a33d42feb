package event

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
)

func TestParseTypeFilter(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"toast.shown", 1},
		{"toast.shown,onboarding.completed", 2},
		{" toast.shown , ,onboarding.completed ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parseTypeFilter(tt.raw)
			if len(got) != tt.want {
				t.Errorf("len(parseTypeFilter(%q)) = %d, want %d", tt.raw, len(got), tt.want)
			}
		})
	}
}

func newStreamTestServer(t *testing.T) (*httptest.Server, *eventbus.Bus) {
	t.Helper()
	bus := eventbus.New()
	r := chi.NewRouter()
	NewServer(bus).Register(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, bus
}

func readSSEFrame(t *testing.T, br *bufio.Reader) map[string]string {
	t.Helper()
	frame := map[string]string{}
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			t.Fatalf("failed to read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			if len(frame) > 0 {
				return frame
			}
			continue
		}
		field, value, ok := strings.Cut(line, ": ")
		if !ok {
			t.Fatalf("malformed stream line %q", line)
		}
		frame[field] = value
	}
}

func TestStreamEventsDeliversPublishedEvents(t *testing.T) {
	ts, bus := newStreamTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/events")
	if err != nil {
		t.Fatalf("GET /events failed: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	// Give the handler a moment to subscribe before publishing.
	time.Sleep(50 * time.Millisecond)
	bus.PublishNew(eventbus.EventTaskUpdated, "t1", "", nil)

	frame := readSSEFrame(t, bufio.NewReader(resp.Body))
	if frame["event"] != string(eventbus.EventTaskUpdated) {
		t.Errorf("event = %q, want %s", frame["event"], eventbus.EventTaskUpdated)
	}
	if !strings.Contains(frame["data"], `"taskId":"t1"`) {
		t.Errorf("data = %q, want taskId t1", frame["data"])
	}
	if frame["id"] == "" {
		t.Error("frame has no id")
	}
}

func TestStreamEventsHonorsTypeFilter(t *testing.T) {
	ts, bus := newStreamTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/events?types=onboarding.completed")
	if err != nil {
		t.Fatalf("GET /events failed: %v", err)
	}
	defer resp.Body.Close()

	time.Sleep(50 * time.Millisecond)
	bus.PublishNew(eventbus.EventTaskUpdated, "t1", "", nil)
	bus.PublishNew(eventbus.EventOnboardingCompleted, "t1", "", nil)

	frame := readSSEFrame(t, bufio.NewReader(resp.Body))
	if frame["event"] != string(eventbus.EventOnboardingCompleted) {
		t.Errorf("event = %q, want the filtered type only", frame["event"])
	}
}

func TestStreamEndsWhenClientDisconnects(t *testing.T) {
	ts, bus := newStreamTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/events", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET /events failed: %v", err)
	}
	resp.Body.Close()

	// After the client goes away the handler must unsubscribe; publishing
	// must not panic or block.
	time.Sleep(50 * time.Millisecond)
	bus.PublishNew(eventbus.EventTaskUpdated, "t1", "", nil)
}
