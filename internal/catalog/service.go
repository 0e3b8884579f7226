// Package catalog provides typed operations over the message channel:
// card queries and mutations, image attachment, shop settings, and
// hint/order submissions. Each operation is one request tuple and,
// where the backend acknowledges, one awaited reply tuple.
package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopboxapp/shopbox-client/internal/channel"
	"github.com/shopboxapp/shopbox-client/internal/errors"
)

const defaultTimeout = 15 * time.Second

// Conn is the slice of the channel the service needs.
type Conn interface {
	Send(msg channel.Message) error
	Subscribe(domain, verb string, buffer int) *channel.Subscription
}

// Service issues catalog operations over the channel.
type Service struct {
	conn    Conn
	logger  *slog.Logger
	timeout time.Duration
}

// NewService creates a catalog service.
func NewService(conn Conn, logger *slog.Logger) *Service {
	return &Service{
		conn:    conn,
		logger:  logger,
		timeout: defaultTimeout,
	}
}

// request sends a tuple and waits for the first reply on the given
// topic. The backend does not correlate requests, so the first matching
// reply wins. Backend error tuples abort the wait early.
func (s *Service) request(ctx context.Context, out channel.Message, replyDomain, replyVerb string) (channel.Message, error) {
	reply := s.conn.Subscribe(replyDomain, replyVerb, 1)
	defer reply.Cancel()
	backendErrs := s.conn.Subscribe("error", channel.VerbAny, 1)
	defer backendErrs.Cancel()

	if err := s.conn.Send(out); err != nil {
		return channel.Message{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	select {
	case msg := <-reply.C:
		return msg, nil
	case msg := <-backendErrs.C:
		var text string
		_ = msg.Arg(0, &text)
		return channel.Message{}, errors.Unavailable("backend error: " + text)
	case <-ctx.Done():
		return channel.Message{}, ctx.Err()
	}
}

// call builds a request tuple and awaits its reply.
func (s *Service) call(ctx context.Context, domain, verb string, args []any, replyDomain, replyVerb string) (channel.Message, error) {
	out, err := channel.NewMessage(domain, verb, args...)
	if err != nil {
		return channel.Message{}, errors.Internal("encoding request").WithCause(err)
	}
	return s.request(ctx, out, replyDomain, replyVerb)
}

// ackID extracts the record id from an acknowledgement tuple. The
// backend stringifies the id before emitting it, so decode the string
// and parse it back to a number.
func ackID(reply channel.Message, what string) (int64, error) {
	var raw string
	if err := reply.Arg(0, &raw); err != nil {
		return 0, errors.Internalf("decoding %s id: %v", what, err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Internalf("parsing %s id %q: %v", what, raw, err)
	}
	return id, nil
}

// send fires a tuple without awaiting a reply.
func (s *Service) send(domain, verb string, args ...any) error {
	out, err := channel.NewMessage(domain, verb, args...)
	if err != nil {
		return errors.Internal("encoding request").WithCause(err)
	}
	return s.conn.Send(out)
}
