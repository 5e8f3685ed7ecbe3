package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ntfyTimeout bounds a single outbound notification attempt.
const ntfyTimeout = 15 * time.Second

// Notification is one outbound alert. Built fresh per alert and immutable
// once constructed.
type Notification struct {
	Title    string
	Body     string
	Priority int // 1 (min) to 5 (max)
	Tags     []string
}

// Channel delivers a notification to one backend. Implementations never
// return an error: delivery is best-effort, at-most-once, and failures are
// logged and dropped.
type Channel interface {
	Publish(n Notification)
}

// Dispatcher fans a notification out to every configured channel.
type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

func (d *Dispatcher) Add(ch Channel) {
	d.channels = append(d.channels, ch)
}

func (d *Dispatcher) Publish(n Notification) {
	for _, ch := range d.channels {
		ch.Publish(n)
	}
}

// NtfyChannel sends notifications via an ntfy-compatible HTTP endpoint.
type NtfyChannel struct {
	URL      string
	Token    string
	Hostname string
	HTTP     *http.Client
}

// Publish issues one POST to the ntfy endpoint. The Title header must be
// plain ASCII, so the title is sanitized and the icons travel in the Tags
// header instead; the body is raw UTF-8 and keeps emoji intact.
func (c *NtfyChannel) Publish(n Notification) {
	if c.URL == "" {
		slog.Error("NTFY_URL is not configured, dropping notification", "title", n.Title)
		return
	}

	title := sanitizeTitle(n.Title) + " | " + c.Hostname
	body := strings.TrimSpace(strings.ReplaceAll(n.Body, "\x00", ""))

	ctx, cancel := context.WithTimeout(context.Background(), ntfyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(body))
	if err != nil {
		slog.Error("Ntfy request error", "err", err)
		return
	}
	req.Header.Set("Title", title)
	req.Header.Set("Priority", strconv.Itoa(n.Priority))
	req.Header.Set("Tags", strings.Join(n.Tags, ","))
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		slog.Error("Ntfy error", "err", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("Ntfy error", "status", resp.StatusCode)
		return
	}
	slog.Info("Notification sent", "title", n.Title)
}

// sanitizeTitle strips everything outside the printable ASCII range and
// trims surrounding whitespace.
func sanitizeTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
