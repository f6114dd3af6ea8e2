package broadcast

import (
	"sync"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/log"
	"github.com/agritrade/goapi/base/metrics"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
)

const subscriberBuffer = 16

type subscriber struct {
	ch     chan *bid.Event
	closed bool
}

type impl struct {
	met metrics.Service

	mu       sync.Mutex
	topics   map[domain.ProductId]map[*subscriber]struct{}
	shutdown bool
}

func New(met metrics.Service) Service {
	return &impl{
		met:    met,
		topics: map[domain.ProductId]map[*subscriber]struct{}{},
	}
}

func (im *impl) Subscribe(ctx bCtx.Ctx, productId domain.ProductId) (<-chan *bid.Event, func()) {
	im.mu.Lock()
	defer im.mu.Unlock()

	sub := &subscriber{ch: make(chan *bid.Event, subscriberBuffer)}
	if im.shutdown {
		sub.closed = true
		close(sub.ch)
		return sub.ch, func() {}
	}

	if im.topics[productId] == nil {
		im.topics[productId] = map[*subscriber]struct{}{}
	}
	im.topics[productId][sub] = struct{}{}
	im.met.BumpSum("subscribe", 1, "product", string(productId))

	unsubscribe := func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		im.remove(productId, sub)
	}
	return sub.ch, unsubscribe
}

// remove must be called with im.mu held
func (im *impl) remove(productId domain.ProductId, sub *subscriber) {
	subs, ok := im.topics[productId]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(im.topics, productId)
	}
	sub.closed = true
	close(sub.ch)
}

func (im *impl) Publish(ctx bCtx.Ctx, productId domain.ProductId, event *bid.Event) {
	im.mu.Lock()
	defer im.mu.Unlock()

	for sub := range im.topics[productId] {
		select {
		case sub.ch <- event:
		default:
			// slow subscriber, drop the event rather than block the hub
			im.met.BumpSum("publish.dropped", 1, "product", string(productId))
			ctx.WithFields(log.Fields{
				"productId": productId,
				"type":      event.Type,
			}).Warn("dropped event for slow subscriber")
		}
	}
}

func (im *impl) Shutdown(ctx bCtx.Ctx) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.shutdown {
		return
	}
	im.shutdown = true
	for productId, subs := range im.topics {
		for sub := range subs {
			sub.closed = true
			close(sub.ch)
		}
		delete(im.topics, productId)
	}
}
