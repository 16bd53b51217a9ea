package notify_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sublign/internal/config"
	"sublign/internal/notify"
)

type captured struct {
	method   string
	body     string
	title    string
	tags     string
	priority string
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *[]captured) {
	t.Helper()
	var requests []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		requests = append(requests, captured{
			method:   r.Method,
			body:     string(body),
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func serviceFor(endpoint string) notify.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = endpoint
	cfg.Notifications.RequestTimeout = 2
	return notify.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = "  "
	svc := notify.NewService(&cfg)
	if err := svc.NotifySubtitleShifted(context.Background(), "movie.srt", 1.5); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNotifySubtitleShiftedFormatsMessage(t *testing.T) {
	server, requests := newCaptureServer(t, http.StatusOK)
	svc := serviceFor(server.URL)

	if err := svc.NotifySubtitleShifted(context.Background(), "movie.en.srt", -0.992); err != nil {
		t.Fatalf("NotifySubtitleShifted returned error: %v", err)
	}
	if len(*requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*requests))
	}
	req := (*requests)[0]
	if req.method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.method)
	}
	if req.title != "Sublign - Subtitle Shifted" {
		t.Errorf("title = %q", req.title)
	}
	if req.body != "Shifted movie.en.srt by -0.992s" {
		t.Errorf("body = %q", req.body)
	}
	if req.tags != "sublign,shift,applied" {
		t.Errorf("tags = %q", req.tags)
	}
	if req.priority != "" {
		t.Errorf("priority = %q, want unset", req.priority)
	}
}

func TestNotifyRunCompletedReportsFailures(t *testing.T) {
	server, requests := newCaptureServer(t, http.StatusOK)
	svc := serviceFor(server.URL)

	if err := svc.NotifyRunCompleted(context.Background(), 3, 1, 2, 90*time.Second); err != nil {
		t.Fatalf("NotifyRunCompleted returned error: %v", err)
	}
	req := (*requests)[0]
	if req.title != "Sublign - Run Complete (with errors)" {
		t.Errorf("title = %q", req.title)
	}
	if req.body != "Run complete: 3 shifted, 1 left alone, 2 failed in 1m30s" {
		t.Errorf("body = %q", req.body)
	}
}

func TestNotifyErrorUsesHighPriority(t *testing.T) {
	server, requests := newCaptureServer(t, http.StatusOK)
	svc := serviceFor(server.URL)

	if err := svc.NotifyError(context.Background(), errors.New("boom"), "movie.mkv"); err != nil {
		t.Fatalf("NotifyError returned error: %v", err)
	}
	req := (*requests)[0]
	if req.priority != "high" {
		t.Errorf("priority = %q, want high", req.priority)
	}
	if req.body != "Error with movie.mkv: boom" {
		t.Errorf("body = %q", req.body)
	}
}

func TestSendSurfacesServerErrors(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusForbidden)
	svc := serviceFor(server.URL)

	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
