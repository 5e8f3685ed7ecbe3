package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"nomadmon/internal/format"
)

// dockerEventsRequest asks the daemon for container "die" events only.
// The filter is the percent-encoded JSON
// {"type":["container"],"event":["die"]}.
const dockerEventsRequest = "GET /events?filters=%7B%22type%22%3A%5B%22container%22%5D%2C%22event%22%3A%5B%22die%22%5D%7D HTTP/1.0\r\n\r\n"

// streamBackoff is the fixed delay between reconnection attempts.
const streamBackoff = 10 * time.Second

var errStreamClosed = errors.New("event stream closed")

// ContainerEventStream keeps a best-effort continuous view of container
// death events from the Docker event socket. It never blocks the rest of
// the system and never terminates the process on error.
type ContainerEventStream struct {
	SocketPath string
	Notify     Channel
	Backoff    time.Duration

	dial func() (net.Conn, error)
}

func NewContainerEventStream(socketPath string, notify Channel) *ContainerEventStream {
	s := &ContainerEventStream{
		SocketPath: socketPath,
		Notify:     notify,
		Backoff:    streamBackoff,
	}
	s.dial = func() (net.Conn, error) {
		return net.Dial("unix", s.SocketPath)
	}
	return s
}

// Run loops for the process lifetime. A missing socket disables the
// feature cleanly; monitoring continues without it.
func (s *ContainerEventStream) Run(ctx context.Context) {
	if _, err := os.Stat(s.SocketPath); err != nil {
		slog.Warn("Docker socket not found. Container monitoring disabled.", "path", s.SocketPath)
		return
	}

	slog.Info("Docker event monitor active", "socket", s.SocketPath)

	for {
		if err := s.streamOnce(); err != nil {
			slog.Error("Docker socket connection error", "err", err,
				"retry_in", format.FormatDuration(s.Backoff))
		}
		if ctx.Err() != nil {
			return
		}
		if !sleepWithContext(ctx, s.Backoff) {
			return
		}
	}
}

// streamOnce runs a single connection attempt: dial, send the events
// request, then decode frames until the connection drops. The connection
// is closed on every exit path.
func (s *ContainerEventStream) streamOnce() error {
	conn, err := s.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(dockerEventsRequest)); err != nil {
		return err
	}
	return s.decodeFrames(conn)
}

// decodeFrames consumes newline-delimited frames. Non-JSON frames (the
// HTTP status line, headers, and malformed payloads) are skipped silently;
// only the transport failing ends the loop.
func (s *ContainerEventStream) decodeFrames(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		s.handleFrame(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return errStreamClosed
}

// dockerEvent is the subset of the daemon's event payload we care about.
type dockerEvent struct {
	Actor struct {
		Attributes map[string]string `json:"Attributes"`
	} `json:"Actor"`
}

// handleFrame parses one frame and dispatches an alert when a container
// exited with a non-zero code. A missing exitCode attribute counts as a
// clean exit.
func (s *ContainerEventStream) handleFrame(line string) {
	line = strings.TrimSpace(strings.ReplaceAll(line, "\x00", ""))
	if line == "" {
		return
	}

	var event dockerEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return
	}

	name := event.Actor.Attributes["name"]
	if name == "" {
		name = "Unknown"
	}
	exitCode := event.Actor.Attributes["exitCode"]
	if exitCode == "" {
		exitCode = "0"
	}
	if exitCode == "0" {
		return
	}

	slog.Warn("Container crashed", "container", name, "exit_code", exitCode)
	s.Notify.Publish(Notification{
		Title:    "CONTAINER CRASHED",
		Body:     fmt.Sprintf("Container '%s' crashed (Exit Code: %s)", name, exitCode),
		Priority: 5,
		Tags:     []string{"skull", "warning"},
	})
}
