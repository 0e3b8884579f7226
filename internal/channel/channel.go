package channel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shopboxapp/shopbox-client/internal/errors"
	"github.com/shopboxapp/shopbox-client/internal/metrics"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second

	// Reconnect backoff bounds.
	backoffMin = time.Second
	backoffMax = 30 * time.Second
)

// Channel owns the lifecycle of the persistent websocket to the shop
// backend: it connects once at startup, feeds inbound tuples to the
// dispatcher, and reconnects with backoff when the connection drops.
type Channel struct {
	url        string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	dispatcher *Dispatcher

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool

	// readyOnce closes ready on the first successful connect; screens
	// wait on it to leave their loading state.
	readyOnce sync.Once
	ready     chan struct{}

	wg sync.WaitGroup
}

// New creates a channel for the given websocket URL. metrics may be nil.
func New(url string, dispatcher *Dispatcher, logger *slog.Logger, m *metrics.Metrics) *Channel {
	return &Channel{
		url:        url,
		logger:     logger,
		metrics:    m,
		dispatcher: dispatcher,
		ready:      make(chan struct{}),
	}
}

// Start runs the connect/read/reconnect loop until ctx is canceled.
// Call once, in a goroutine.
func (c *Channel) Start(ctx context.Context) {
	c.wg.Add(1)
	defer c.wg.Done()

	backoff := backoffMin
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.logger.Warn("channel dial failed", "url", c.url, "error", err, "retry_in", backoff)
			if c.metrics != nil {
				c.metrics.ChannelReconnects.Inc()
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			backoff = min(backoff*2, backoffMax)
			continue
		}
		backoff = backoffMin

		c.setConn(conn)
		c.logger.Info("channel connected", "url", c.url)
		if c.metrics != nil {
			c.metrics.ChannelConnects.Inc()
			c.metrics.ChannelConnected.Set(1)
		}
		c.readyOnce.Do(func() { close(c.ready) })

		c.readPump(ctx, conn)

		c.setConn(nil)
		if c.metrics != nil {
			c.metrics.ChannelConnected.Set(0)
		}
		if ctx.Err() == nil {
			c.logger.Warn("channel disconnected, reconnecting")
			if c.metrics != nil {
				c.metrics.ChannelReconnects.Inc()
			}
		}
	}
}

// readPump reads frames until the connection fails or ctx is canceled.
func (c *Channel) readPump(ctx context.Context, conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	stop := make(chan struct{})
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.mu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
				c.mu.Unlock()
				if err != nil {
					return
				}
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-stop:
				return
			}
		}
	}()
	defer close(stop)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			return
		}

		msg, err := DecodeMessage(data)
		if err != nil {
			c.logger.Warn("dropping malformed channel message", "error", err)
			continue
		}
		if c.metrics != nil {
			c.metrics.MessagesTotal.WithLabelValues("in", msg.Domain, msg.Verb).Inc()
		}
		c.dispatcher.Publish(msg)
	}
}

// Send writes one tuple to the backend.
func (c *Channel) Send(msg Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.Unavailable("channel not connected")
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Unavailable("channel send failed").WithCause(err)
	}
	if c.metrics != nil {
		c.metrics.MessagesTotal.WithLabelValues("out", msg.Domain, msg.Verb).Inc()
	}
	return nil
}

// Connected reports whether the socket is currently up.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// WaitConnected blocks until the first successful connect or ctx ends.
// The screen surface stays in its loading state until this returns.
func (c *Channel) WaitConnected(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a (domain, verb) consumer on the dispatcher.
func (c *Channel) Subscribe(domain, verb string, buffer int) *Subscription {
	return c.dispatcher.Subscribe(domain, verb, buffer)
}

// Shutdown closes the connection and waits for the pumps to stop.
// Cancel the Start context before calling.
func (c *Channel) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Channel) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.connected = conn != nil
	c.mu.Unlock()
}
