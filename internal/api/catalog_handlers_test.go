package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusmatch/campusmatch/internal/models"
)

type stubEventLister struct {
	events []models.Event
	err    error
}

func (s *stubEventLister) ListAll(ctx context.Context) ([]models.Event, error) {
	return s.events, s.err
}

type stubSponsorLister struct {
	sponsors []models.Sponsor
	err      error
}

func (s *stubSponsorLister) ListAll(ctx context.Context) ([]models.Sponsor, error) {
	return s.sponsors, s.err
}

type stubMatchLister struct {
	matches []models.Match
	err     error
}

func (s *stubMatchLister) ListAll(ctx context.Context) ([]models.Match, error) {
	return s.matches, s.err
}

func newTestCatalogHandler(events *stubEventLister, sponsors *stubSponsorLister, matches *stubMatchLister) *CatalogHandler {
	if events == nil {
		events = &stubEventLister{}
	}
	if sponsors == nil {
		sponsors = &stubSponsorLister{}
	}
	if matches == nil {
		matches = &stubMatchLister{}
	}
	return NewCatalogHandler(events, sponsors, matches, testLogger())
}

func TestListEvents(t *testing.T) {
	handler := newTestCatalogHandler(&stubEventLister{
		events: []models.Event{
			{ID: "evt-1", Title: "Spring Hackathon"},
			{ID: "evt-2", Title: "Career Fair"},
		},
	}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()

	handler.ListEvents(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 2 {
		t.Errorf("expected 2 events, got %d", len(body))
	}
}

func TestListEvents_EmptyCatalog(t *testing.T) {
	handler := newTestCatalogHandler(&stubEventLister{events: nil}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()

	handler.ListEvents(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// A nil slice must serialize as [], not null
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestListEvents_Error(t *testing.T) {
	handler := newTestCatalogHandler(&stubEventLister{err: errors.New("boom")}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()

	handler.ListEvents(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestListSponsors(t *testing.T) {
	handler := newTestCatalogHandler(nil, &stubSponsorLister{
		sponsors: []models.Sponsor{{ID: "spn-1", CompanyName: "Acme"}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sponsors", nil)
	rec := httptest.NewRecorder()

	handler.ListSponsors(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []models.Sponsor
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 1 || body[0].CompanyName != "Acme" {
		t.Errorf("unexpected sponsors: %+v", body)
	}
}

func TestListMatches(t *testing.T) {
	handler := newTestCatalogHandler(nil, nil, &stubMatchLister{
		matches: []models.Match{{ID: "match-1", MatchScore: 0.8, Status: models.MatchStatusPending}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	rec := httptest.NewRecorder()

	handler.ListMatches(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []models.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 1 || body[0].MatchScore != 0.8 {
		t.Errorf("unexpected matches: %+v", body)
	}
}

func TestCatalogHandlers_MethodNotAllowed(t *testing.T) {
	handler := newTestCatalogHandler(nil, nil, nil)

	endpoints := []struct {
		name string
		fn   http.HandlerFunc
	}{
		{"events", handler.ListEvents},
		{"sponsors", handler.ListSponsors},
		{"matches", handler.ListMatches},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/"+ep.name, nil)
			rec := httptest.NewRecorder()

			ep.fn(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected 405, got %d", rec.Code)
			}
		})
	}
}

func TestSetupRoutes(t *testing.T) {
	mux := http.NewServeMux()
	SetupRoutes(mux,
		&stubRunner{matches: []models.Match{}},
		&stubEventLister{},
		&stubSponsorLister{},
		&stubMatchLister{},
		testLogger())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodPost, "/api/matchmaking/run", http.StatusOK},
		{http.MethodGet, "/api/events", http.StatusOK},
		{http.MethodGet, "/api/sponsors", http.StatusOK},
		{http.MethodGet, "/api/matches", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}
