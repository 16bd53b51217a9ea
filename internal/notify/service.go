package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sublign/internal/config"
)

const userAgent = "Sublign/0.1.0"

// Service defines the notification surface exposed to sync runs.
type Service interface {
	NotifyRunStarted(ctx context.Context, mediaCount, subtitleCount int) error
	NotifySubtitleShifted(ctx context.Context, subtitle string, offsetSeconds float64) error
	NotifyRunCompleted(ctx context.Context, shifted, rejected, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, mediaCount, subtitleCount int) error {
	data := payload{
		title:   "Sublign - Run Started",
		message: fmt.Sprintf("Checking %d subtitles across %d media files", subtitleCount, mediaCount),
		tags:    []string{"sublign", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySubtitleShifted(ctx context.Context, subtitle string, offsetSeconds float64) error {
	subtitle = strings.TrimSpace(subtitle)
	data := payload{
		title:   "Sublign - Subtitle Shifted",
		message: fmt.Sprintf("Shifted %s by %+.3fs", subtitle, offsetSeconds),
		tags:    []string{"sublign", "shift", "applied"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, shifted, rejected, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title, message string
	if failed == 0 {
		title = "Sublign - Run Complete"
		message = fmt.Sprintf("Run complete: %d shifted, %d left alone in %s", shifted, rejected, durationText)
	} else {
		title = "Sublign - Run Complete (with errors)"
		message = fmt.Sprintf("Run complete: %d shifted, %d left alone, %d failed in %s", shifted, rejected, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"sublign", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Sublign - Error",
		message:  builder.String(),
		tags:     []string{"sublign", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Sublign - Test",
		message:  "Notification system test",
		tags:     []string{"sublign", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, int, int) error             { return nil }
func (noopService) NotifySubtitleShifted(context.Context, string, float64) error { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
