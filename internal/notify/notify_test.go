package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hyperifyio/aptwatch/internal/scrape"
)

const source = "https://example.com/floorplans.aspx"

func plans(n int) []scrape.FloorPlan {
	out := make([]scrape.FloorPlan, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, scrape.FloorPlan{
			LayoutImageURL: fmt.Sprintf("https://cdn.example.com/p%d.jpg", i),
			PlanLabel:      fmt.Sprintf("A%d", i),
			SquareFeet:     700 + i,
			Rent:           "$1,200 - $1,450",
			Availability:   1,
		})
	}
	return out
}

func TestChunk(t *testing.T) {
	for _, tc := range []struct {
		n, size int
		want    []int
	}{
		{0, 10, nil},
		{10, 10, []int{10}},
		{11, 10, []int{10, 1}},
		{25, 10, []int{10, 10, 5}},
	} {
		got := Chunk(plans(tc.n), tc.size)
		if len(got) != len(tc.want) {
			t.Fatalf("n=%d: expected %d batches, got %d", tc.n, len(tc.want), len(got))
		}
		for i, b := range got {
			if len(b) != tc.want[i] {
				t.Fatalf("n=%d: batch %d has %d, want %d", tc.n, i, len(b), tc.want[i])
			}
		}
	}
}

func TestBuildMessages_EmbedFields(t *testing.T) {
	msgs := BuildMessages(plans(12), source)
	if len(msgs) != 2 || len(msgs[0].Embeds) != 10 || len(msgs[1].Embeds) != 2 {
		t.Fatalf("unexpected batching: %d messages", len(msgs))
	}
	e := msgs[0].Embeds[0]
	if e.Thumbnail == nil || e.Thumbnail.URL != "https://cdn.example.com/p0.jpg" {
		t.Fatalf("unexpected thumbnail: %+v", e.Thumbnail)
	}
	if e.Footer == nil || e.Footer.Text != source {
		t.Fatalf("unexpected footer: %+v", e.Footer)
	}
	names := []string{"Layout", "Sq Ft", "Rent", "Available"}
	values := []string{"A0", "700", "$1,200 - $1,450", "1"}
	if len(e.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(e.Fields))
	}
	for i, f := range e.Fields {
		if f.Name != names[i] || f.Value != values[i] || !f.Inline {
			t.Fatalf("field %d: got %+v", i, f)
		}
	}
	if msgs[1].Content != AlertContent {
		t.Fatalf("unexpected content %q", msgs[1].Content)
	}
}

func TestWebhookSend_PostsEachBatch(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []Message
		wait []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var m Message
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		got = append(got, m)
		wait = append(wait, r.URL.Query().Get("wait"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	wh := &Webhook{URL: srv.URL + "/api/webhooks/1/token", HTTPClient: srv.Client()}
	if err := wh.Send(context.Background(), plans(15), source); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}
	if len(got[0].Embeds) != 10 || len(got[1].Embeds) != 5 {
		t.Fatalf("unexpected embed counts: %d, %d", len(got[0].Embeds), len(got[1].Embeds))
	}
	for _, w := range wait {
		if w != "true" {
			t.Fatalf("expected wait=true, got %q", w)
		}
	}
}

func TestWebhookSend_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer srv.Close()

	wh := &Webhook{URL: srv.URL, HTTPClient: srv.Client()}
	err := wh.Send(context.Background(), plans(1), source)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestWebhookSend_NotConfigured(t *testing.T) {
	wh := &Webhook{}
	if err := wh.Send(context.Background(), plans(1), source); !errors.Is(err, ErrNoWebhookURL) {
		t.Fatalf("expected ErrNoWebhookURL, got %v", err)
	}
}
