package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		endpoint:   server.URL,
		token:      "test-token",
		httpClient: server.Client(),
	}
}

func TestClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if !strings.Contains(req["inputs"], "detective") {
			t.Errorf("inputs = %q, want overview text", req["inputs"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([][]labelScore{{
			{Label: "FEAR", Score: 0.7},
			{Label: "sadness", Score: 0.2},
		}})
	}))
	defer server.Close()

	scores, err := testClient(server).Classify(context.Background(), "A detective hunts a serial killer through a rain-soaked city.")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Classify() got %d labels, want 2", len(scores))
	}
	// Labels are lowercased regardless of what the model returns.
	if scores["fear"] != 0.7 {
		t.Errorf("scores[fear] = %v, want 0.7", scores["fear"])
	}
	if scores["sadness"] != 0.2 {
		t.Errorf("scores[sadness] = %v, want 0.2", scores["sadness"])
	}
}

func TestClassifyShortTextSkipsEndpoint(t *testing.T) {
	var requestCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	defer server.Close()

	scores, err := testClient(server).Classify(context.Background(), "  meh  ")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Classify() got %v, want empty map", scores)
	}
	if count := requestCount.Load(); count != 0 {
		t.Errorf("Expected 0 requests, got %d", count)
	}
}

func TestClassifyTruncatesLongText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req["inputs"]) != maxInputLength {
			t.Errorf("inputs length = %d, want %d", len(req["inputs"]), maxInputLength)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([][]labelScore{{{Label: "joy", Score: 0.5}}})
	}))
	defer server.Close()

	long := strings.Repeat("a", 2*maxInputLength)
	if _, err := testClient(server).Classify(context.Background(), long); err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
}

func TestClassifyRetriesWhileLoading(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := requestCount.Add(1)

		// Model still loading for the first 2 requests.
		if count < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([][]labelScore{{{Label: "joy", Score: 0.9}}})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scores, err := testClient(server).Classify(ctx, "An uplifting story about a small town coming together.")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if scores["joy"] != 0.9 {
		t.Errorf("scores[joy] = %v, want 0.9", scores["joy"])
	}
	if count := requestCount.Load(); count != 3 {
		t.Errorf("Expected 3 requests, got %d", count)
	}
}

func TestClassifyUnavailableExhausted(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := testClient(server).Classify(ctx, "A heist crew plans one final impossible job.")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Classify() error = %v, want ErrUnavailable", err)
	}
	if count := requestCount.Load(); count != 4 {
		t.Errorf("Expected 4 requests, got %d", count)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("https://example.com/model", "tok")

	if client.endpoint != "https://example.com/model" {
		t.Errorf("NewClient() endpoint = %s", client.endpoint)
	}
	if client.token != "tok" {
		t.Errorf("NewClient() token = %s", client.token)
	}
	if client.httpClient == nil {
		t.Error("NewClient() httpClient is nil")
	}
}
