package discover

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTVMazeTestServer(t *testing.T, handler http.HandlerFunc) *TVMazeClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTVMazeClient(time.Second).WithBaseURL(server.URL)
}

func TestTVMazeAiringTodayDeduplicates(t *testing.T) {
	client := newTVMazeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		// The same show airs twice today; it must appear once
		_, _ = w.Write([]byte(`[
			{"show": {"id": 1, "name": "Morning Desk", "summary": "<p>News.</p>",
				"premiered": "2020-03-01", "rating": {"average": 6.1},
				"image": {"medium": "http://img/medium.jpg"}}},
			{"show": {"id": 1, "name": "Morning Desk"}},
			{"show": {"id": 2, "name": "Night Owls", "genres": ["Comedy"]}}
		]`))
	})

	items, err := client.AiringToday()
	if err != nil {
		t.Fatalf("AiringToday failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 deduplicated items, got %d", len(items))
	}

	first := items[0]
	if first.Overview != "News." {
		t.Errorf("Expected HTML-stripped summary, got %q", first.Overview)
	}
	if first.Year != 2020 {
		t.Errorf("Expected premiere year 2020, got %d", first.Year)
	}
	if first.PosterURL != "http://img/medium.jpg" {
		t.Errorf("Unexpected poster URL: %q", first.PosterURL)
	}
	if first.Rating != 6.1 {
		t.Errorf("Expected rating 6.1, got %v", first.Rating)
	}
}

func TestTVMazeTopRatedFiltersAndSorts(t *testing.T) {
	client := newTVMazeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/shows" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"score": 1, "show": {"id": 1, "name": "Mediocre", "rating": {"average": 5.0}}},
			{"score": 1, "show": {"id": 2, "name": "Good", "rating": {"average": 7.5}}},
			{"score": 1, "show": {"id": 3, "name": "Great", "rating": {"average": 9.0}}}
		]`))
	})

	items, err := client.TopRated()
	if err != nil {
		t.Fatalf("TopRated failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items at or above 7.0, got %d", len(items))
	}
	if items[0].Title != "Great" || items[1].Title != "Good" {
		t.Errorf("Expected rating-sorted items, got %+v", items)
	}
}

func TestTVMazeByGenre(t *testing.T) {
	client := newTVMazeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"score": 1, "show": {"id": 1, "name": "Deep Space", "genres": ["Science-Fiction"]}},
			{"score": 1, "show": {"id": 2, "name": "Courtroom", "genres": ["Drama"]}}
		]`))
	})

	items, err := client.ByCategory(SciFi)
	if err != nil {
		t.Fatalf("ByCategory failed: %v", err)
	}

	if len(items) != 1 || items[0].Title != "Deep Space" {
		t.Errorf("Expected only matching genre, got %+v", items)
	}
}

func TestShowCategoryEnum(t *testing.T) {
	if len(ShowCategories()) != 7 {
		t.Errorf("Expected 7 show categories, got %d", len(ShowCategories()))
	}

	for _, c := range ShowCategories() {
		if c.DisplayName() == "Unknown" {
			t.Errorf("ShowCategory %v has no display name", c)
		}
	}

	if SciFi.Genre() != "Science-Fiction" {
		t.Errorf("Unexpected genre mapping: %q", SciFi.Genre())
	}
	if AiringToday.Genre() != "" {
		t.Error("Expected no genre for AiringToday")
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<p>Hello</p>", "Hello"},
		{"plain", "plain"},
		{"<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := stripTags(tt.input); got != tt.expected {
				t.Errorf("stripTags(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
