package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != UserAgent {
			t.Errorf("expected User-Agent %q, got %q", UserAgent, got)
		}
		w.Write([]byte(`<html><body><h1>Games</h1></body></html>`))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	doc, err := f.Document(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}

	if got := doc.Find("h1").Text(); got != "Games" {
		t.Errorf("expected h1 text 'Games', got %q", got)
	}
}

func TestDocumentRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`<html><body><p>ok</p></body></html>`))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	f.retryInterval = time.Millisecond

	doc, err := f.Document(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Document failed after retry: %v", err)
	}
	if doc.Find("p").Text() != "ok" {
		t.Error("expected retried fetch to return the second response")
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestDocumentGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	f.retryInterval = time.Millisecond

	if _, err := f.Document(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}
