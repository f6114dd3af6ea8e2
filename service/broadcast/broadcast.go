package broadcast

import (
	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
)

// Service is an in-process fan-out hub for accepted bid events, keyed by
// product. Delivery is best effort at most once: a subscriber whose buffer
// is full misses the event. Events of one product are delivered to each
// subscriber in acceptance order.
type Service interface {
	// Subscribe registers a subscriber on the product topic. The returned
	// channel closes when unsubscribe is called or the hub shuts down.
	Subscribe(ctx bCtx.Ctx, productId domain.ProductId) (events <-chan *bid.Event, unsubscribe func())
	Publish(ctx bCtx.Ctx, productId domain.ProductId, event *bid.Event)
	// Shutdown closes every subscriber channel
	Shutdown(ctx bCtx.Ctx)
}
