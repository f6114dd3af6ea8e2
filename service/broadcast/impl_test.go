package broadcast

import (
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/metrics"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/domain/bid"
)

var mockCtx = bCtx.Background()

type noopEnder struct{}

func (noopEnder) End() {}

type noopMetrics struct{}

func (noopMetrics) BumpAvg(key string, val float64, tags ...string) {}
func (noopMetrics) BumpSum(key string, val float64, tags ...string) {}
func (noopMetrics) BumpHistogram(key string, val float64, tags ...string) {}
func (noopMetrics) BumpTime(key string, tags ...string) metrics.Ender { return noopEnder{} }

type broadcastSuite struct {
	suite.Suite
	im Service
}

func TestBroadcastSuite(t *testing.T) {
	suite.Run(t, new(broadcastSuite))
}

func (s *broadcastSuite) SetupTest() {
	s.im = New(noopMetrics{})
}

func event(productId domain.ProductId, amount int64) *bid.Event {
	return &bid.Event{
		Type: bid.EventTypeBidAccepted,
		Bid:  &bid.Bid{ProductId: productId, Amount: amount},
	}
}

func (s *broadcastSuite) TestFanOutPreservesOrder() {
	ch1, unsub1 := s.im.Subscribe(mockCtx, "p1")
	ch2, unsub2 := s.im.Subscribe(mockCtx, "p1")
	defer unsub1()
	defer unsub2()

	s.im.Publish(mockCtx, "p1", event("p1", 1100))
	s.im.Publish(mockCtx, "p1", event("p1", 1200))

	for _, ch := range []<-chan *bid.Event{ch1, ch2} {
		s.Equal(int64(1100), (<-ch).Bid.Amount)
		s.Equal(int64(1200), (<-ch).Bid.Amount)
	}
}

func (s *broadcastSuite) TestTopicIsolation() {
	ch1, unsub1 := s.im.Subscribe(mockCtx, "p1")
	defer unsub1()

	s.im.Publish(mockCtx, "p2", event("p2", 900))

	select {
	case ev := <-ch1:
		s.Failf("unexpected event", "%+v", ev)
	default:
	}
}

func (s *broadcastSuite) TestSlowSubscriberDoesNotBlock() {
	ch, unsub := s.im.Subscribe(mockCtx, "p1")
	defer unsub()

	for i := 0; i < subscriberBuffer+5; i++ {
		s.im.Publish(mockCtx, "p1", event("p1", int64(1000+i)))
	}

	// the buffer keeps the oldest events, overflow is dropped
	s.Len(ch, subscriberBuffer)
	s.Equal(int64(1000), (<-ch).Bid.Amount)
}

func (s *broadcastSuite) TestUnsubscribeClosesChannel() {
	ch, unsub := s.im.Subscribe(mockCtx, "p1")
	unsub()

	_, ok := <-ch
	s.False(ok)

	// publishing after unsubscribe is a no-op
	s.im.Publish(mockCtx, "p1", event("p1", 1100))
}

func (s *broadcastSuite) TestShutdown() {
	ch1, _ := s.im.Subscribe(mockCtx, "p1")
	ch2, _ := s.im.Subscribe(mockCtx, "p2")

	s.im.Shutdown(mockCtx)

	_, ok := <-ch1
	s.False(ok)
	_, ok = <-ch2
	s.False(ok)

	ch3, unsub3 := s.im.Subscribe(mockCtx, "p3")
	defer unsub3()
	_, ok = <-ch3
	s.False(ok)
}
