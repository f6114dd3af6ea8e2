package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	bCtx "github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/goroutine"
	"github.com/agritrade/goapi/base/metrics"
	"github.com/agritrade/goapi/domain"
	"github.com/agritrade/goapi/service/broadcast"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type handler struct {
	hub broadcast.Service
	met metrics.Service
}

// New will initialize the live bid stream endpoint
func New(e *echo.Echo, hub broadcast.Service) {
	h := &handler{
		hub: hub,
		met: metrics.New("bid.stream"),
	}

	e.GET("/bids/stream/:productId", h.stream)
}

// stream upgrades the connection and relays bid events of the product until
// the client disconnects. Events arrive in acceptance order; a client that
// cannot keep up misses the overflow and is expected to refetch the bid list.
func (h *handler) stream(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	productId := domain.ProductId(c.Param("productId"))

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctx.WithField("err", err).Error("upgrade failed")
		return err
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe(ctx, productId)
	defer unsubscribe()

	h.met.BumpSum("connected", 1)
	defer h.met.BumpSum("disconnected", 1)

	// the reader only consumes control frames, a read error means the
	// client went away
	done := make(chan struct{})
	goroutine.RecoverableGo(func() {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}, goroutine.WithAfterEnded(func() { close(done) }))

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				ctx.WithField("err", err).Warn("write event failed")
				return nil
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}
