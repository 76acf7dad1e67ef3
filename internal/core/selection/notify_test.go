package selection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-curator/internal/infrastructure/config"
)

func TestNotifyCallsWebhook(t *testing.T) {
	called := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(config.SelectionConfig{
		WebhookURL: srv.URL,
		Timeout:    5 * time.Second,
	})

	if err := n.Notify(context.Background()); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if called != 1 {
		t.Errorf("webhook called %d times, want 1", called)
	}
}

func TestNotifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(config.SelectionConfig{
		WebhookURL: srv.URL,
		Timeout:    5 * time.Second,
	})

	if err := n.Notify(context.Background()); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestNotifyWithoutURLIsNoop(t *testing.T) {
	n := NewNotifier(config.SelectionConfig{Timeout: time.Second})
	if err := n.Notify(context.Background()); err != nil {
		t.Fatalf("Notify without URL should be a no-op, got %v", err)
	}
}
