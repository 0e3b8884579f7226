package channel

import (
	"log/slog"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// VerbAny subscribes to every verb within a domain.
const VerbAny = "*"

// Subscription is one consumer's feed of matching messages. Consumers
// read from C and must Cancel when their screen goes away.
type Subscription struct {
	C      <-chan Message
	id     string
	domain string
	verb   string
	cancel func()
}

// Cancel removes the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type subscriber struct {
	ch   chan Message
	verb string
}

// Dispatcher fans inbound messages out to subscribers by (domain, verb).
// This replaces the web build's single "current message" slot: two
// screens waiting on different topics can no longer overwrite each
// other's pending message.
type Dispatcher struct {
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[string]map[string]*subscriber // domain -> sub id -> subscriber
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger: logger,
		subs:   make(map[string]map[string]*subscriber),
	}
}

// Subscribe registers interest in (domain, verb). Use VerbAny to match
// every verb in the domain. buffer sizes the delivery channel; a full
// channel drops the message for that subscriber rather than blocking
// the read pump.
func (d *Dispatcher) Subscribe(domain, verb string, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	id, err := gonanoid.New()
	if err != nil {
		// gonanoid only fails when the OS entropy source does.
		panic(err)
	}

	sub := &subscriber{ch: make(chan Message, buffer), verb: verb}

	d.mu.Lock()
	if d.subs[domain] == nil {
		d.subs[domain] = make(map[string]*subscriber)
	}
	d.subs[domain][id] = sub
	d.mu.Unlock()

	return &Subscription{
		C:      sub.ch,
		id:     id,
		domain: domain,
		verb:   verb,
		cancel: func() { d.remove(domain, id) },
	}
}

// Publish delivers a message to every matching subscriber. Non-blocking:
// subscribers that cannot keep up lose messages, mirroring the
// best-effort nature of the channel itself.
func (d *Dispatcher) Publish(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for id, sub := range d.subs[msg.Domain] {
		if sub.verb != VerbAny && sub.verb != msg.Verb {
			continue
		}
		select {
		case sub.ch <- msg:
		default:
			if d.logger != nil {
				d.logger.Warn("dropping channel message for slow subscriber",
					"domain", msg.Domain,
					"verb", msg.Verb,
					"subscriber", id,
				)
			}
		}
	}
}

func (d *Dispatcher) remove(domain, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if subs := d.subs[domain]; subs != nil {
		delete(subs, id)
		if len(subs) == 0 {
			delete(d.subs, domain)
		}
	}
}
