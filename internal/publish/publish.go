// Package publish streams run events to a socket.io dashboard.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/engine"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted to the dashboard.
const (
	EventProgress = "progress"
	EventSummary  = "summary"
)

// ConnectTimeout bounds how long Dial waits for the initial connection.
const ConnectTimeout = 15 * time.Second

// Publisher is an engine.Observer that forwards progress and summary events
// over a connected socket.io client. Emits are fire-and-forget.
type Publisher struct {
	logger *slog.Logger
	emit   func(event string, payload any)
	close  func()

	sent   atomic.Int64
	closed atomic.Bool
}

var _ engine.Observer = (*Publisher)(nil)

func newPublisher(logger *slog.Logger, emit func(string, any), closeFn func()) *Publisher {
	return &Publisher{logger: logger, emit: emit, close: closeFn}
}

// Dial connects to rawURL on the given namespace using the websocket
// transport. It returns once the server acknowledges the connection.
func Dial(ctx context.Context, rawURL, namespace string) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch parsedURL.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q has no host", rawURL)
	}
	if namespace == "" {
		namespace = "/"
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Publisher connected.", "namespace", namespace, "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Initiating publisher connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", ConnectTimeout)
	}

	return newPublisher(logger,
		func(event string, payload any) {
			if !io.Connected() {
				logger.Debug("Publisher not connected, dropping event.", "event", event)
				return
			}
			io.Emit(event, payload)
		},
		func() { io.Disconnect() },
	), nil
}

// HandleEvent implements engine.Observer.
func (p *Publisher) HandleEvent(e engine.Event) {
	if p.closed.Load() {
		return
	}

	switch e.Kind {
	case engine.EventProgress:
		if e.Record == nil {
			return
		}
		p.send(EventProgress, map[string]any{
			"step": e.Record.Step,
			"grid": e.Record.GridSize,
			"work": e.Record.WorkUnits,
			"line": e.Record.Line,
		})
	case engine.EventFinished:
		if e.Summary == nil {
			return
		}
		p.send(EventSummary, map[string]any{
			"elapsed_s": e.Summary.ElapsedSeconds(),
			"line":      e.Summary.MetricLine,
		})
	}
}

func (p *Publisher) send(event string, payload map[string]any) {
	p.emit(event, payload)
	p.sent.Add(1)
}

// Sent reports how many events have been handed to the client.
func (p *Publisher) Sent() int64 {
	return p.sent.Load()
}

// Close disconnects the client. It is safe to call more than once.
func (p *Publisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.logger.Debug("Disconnecting publisher.", "sent", p.sent.Load())
	if p.close != nil {
		p.close()
	}
	return nil
}
