package overpass_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Anastasialos/osmoh/internal/overpass"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mockServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// newTestClient uses a high rate so tests never wait on the limiter.
func newTestClient(url string) *overpass.Client {
	return overpass.NewClient(url, 5*time.Second, 1000, quietLogger())
}

func respondElements(w http.ResponseWriter, elements []map[string]interface{}) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"version":  0.6,
		"elements": elements,
	})
}

// ─── Fetching ─────────────────────────────────────────────────────────────────

func TestByAreaParsesElements(t *testing.T) {
	var gotQuery string
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: expected POST, got %s", r.Method)
		}
		gotQuery = r.FormValue("data")
		respondElements(w, []map[string]interface{}{
			{"type": "node", "id": 240095754, "tags": map[string]string{
				"name": "Corner Cafe", "opening_hours": "Mo-Fr 09:00-18:00",
			}},
			{"type": "way", "id": 50, "tags": map[string]string{
				"opening_hours": "24/7",
			}},
		})
	})

	elems, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{})
	if err != nil {
		t.Fatalf("ByArea: %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	first := elems[0]
	if first.Type != "node" || first.ID != 240095754 {
		t.Errorf("element identity wrong: %+v", first)
	}
	if first.Name != "Corner Cafe" {
		t.Errorf("Name: expected Corner Cafe, got %q", first.Name)
	}
	if first.Hours != "Mo-Fr 09:00-18:00" {
		t.Errorf("Hours should be the raw tag text, got %q", first.Hours)
	}
	if elems[1].Name != "" {
		t.Errorf("nameless element should keep an empty Name, got %q", elems[1].Name)
	}

	if !strings.Contains(gotQuery, `area["name"="Berlin"]`) {
		t.Errorf("query should select the area by name, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, `nwr["opening_hours"]`) {
		t.Errorf("query should filter on the opening_hours tag, got %q", gotQuery)
	}
}

func TestByAreaDefaultLimit(t *testing.T) {
	var gotQuery string
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.FormValue("data")
		respondElements(w, nil)
	})

	if _, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{}); err != nil {
		t.Fatalf("ByArea: %v", err)
	}
	if !strings.Contains(gotQuery, "out tags 25;") {
		t.Errorf("query should carry the default limit, got %q", gotQuery)
	}
}

func TestByAreaQueryCarriesLimit(t *testing.T) {
	var gotQuery string
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.FormValue("data")
		respondElements(w, nil)
	})

	if _, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{Limit: 5}); err != nil {
		t.Fatalf("ByArea: %v", err)
	}
	if !strings.Contains(gotQuery, "out tags 5;") {
		t.Errorf("query should carry the limit, got %q", gotQuery)
	}
}

func TestByBboxQuery(t *testing.T) {
	var gotQuery string
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.FormValue("data")
		respondElements(w, nil)
	})

	box := overpass.Bbox{South: 52.4, West: 13.2, North: 52.6, East: 13.5}
	if _, err := newTestClient(srv.URL).ByBbox(context.Background(), box, overpass.Options{}); err != nil {
		t.Fatalf("ByBbox: %v", err)
	}
	if !strings.Contains(gotQuery, "(52.4,13.2,52.6,13.5)") {
		t.Errorf("query should carry the box coordinates, got %q", gotQuery)
	}
}

func TestElementsWithoutHoursSkipped(t *testing.T) {
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondElements(w, []map[string]interface{}{
			{"type": "node", "id": 1, "tags": map[string]string{"name": "No hours here"}},
			{"type": "node", "id": 2, "tags": map[string]string{"opening_hours": "Su 10:00-14:00"}},
		})
	})

	elems, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{})
	if err != nil {
		t.Fatalf("ByArea: %v", err)
	}
	if len(elems) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elems))
	}
	if elems[0].ID != 2 {
		t.Errorf("wrong element kept: %+v", elems[0])
	}
}

// ─── Errors & retries ─────────────────────────────────────────────────────────

func TestRemarkWithoutResultsIsError(t *testing.T) {
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"remark":   "runtime error: Query timed out in \"query\" at line 1.",
			"elements": []interface{}{},
		})
	})

	_, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{})
	if err == nil {
		t.Fatal("expected error for a remark with no results")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error should carry the server remark, got: %v", err)
	}
}

func TestRetryOnServerError(t *testing.T) {
	attempts := 0
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		respondElements(w, []map[string]interface{}{
			{"type": "node", "id": 1, "tags": map[string]string{"opening_hours": "24/7"}},
		})
	})

	elems, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{})
	if err != nil {
		t.Fatalf("expected success after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts (2x503 then 200), got %d", attempts)
	}
	if len(elems) != 1 {
		t.Errorf("expected 1 element, got %d", len(elems))
	}
}

func TestClientErrorDoesNotRetry(t *testing.T) {
	attempts := 0
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("<html>\n<body>\nError: line 1: parse error\n</body>\n</html>"))
	})

	_, err := newTestClient(srv.URL).ByArea(context.Background(), "Berlin", overpass.Options{})
	if err == nil {
		t.Fatal("expected error for HTTP 400")
	}
	if !strings.Contains(err.Error(), "HTTP 400") {
		t.Errorf("error should name the status, got: %v", err)
	}
	if !strings.Contains(err.Error(), "parse error") {
		t.Errorf("error should carry a body snippet, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("client errors should not be retried, got %d attempts", attempts)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondElements(w, nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestClient(srv.URL).ByArea(ctx, "Berlin", overpass.Options{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

// ─── ParseBbox ────────────────────────────────────────────────────────────────

func TestParseBbox(t *testing.T) {
	box, err := overpass.ParseBbox("52.4, 13.2, 52.6, 13.5")
	if err != nil {
		t.Fatalf("ParseBbox: %v", err)
	}
	want := overpass.Bbox{South: 52.4, West: 13.2, North: 52.6, East: 13.5}
	if box != want {
		t.Errorf("expected %+v, got %+v", want, box)
	}
}

func TestParseBboxRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"too few parts", "52.4,13.2,52.6"},
		{"not a number", "52.4,13.2,52.6,east"},
		{"south above north", "52.6,13.2,52.4,13.5"},
		{"west beyond east", "52.4,13.5,52.6,13.2"},
		{"latitude out of range", "-91,13.2,52.6,13.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := overpass.ParseBbox(tc.in); err == nil {
				t.Errorf("ParseBbox(%q) should fail", tc.in)
			}
		})
	}
}
