package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"finfacil/internal/events"
	"finfacil/internal/logger"
)

// EventHandler streams domain events to clients over Server-Sent Events.
type EventHandler struct {
	bus    events.Subscriber
	buffer int
}

// NewEventHandler creates a new EventHandler. Each client gets a queue of
// buffer events; events that do not fit are dropped for that client.
func NewEventHandler(bus events.Subscriber, buffer int) *EventHandler {
	if buffer <= 0 {
		buffer = 64
	}
	return &EventHandler{bus: bus, buffer: buffer}
}

// Stream handles a Server-Sent Events subscription.
// @Summary     Stream events
// @Description Stream goal, ledger and notification changes as Server-Sent Events
// @Tags        events
// @Produce     text/event-stream
// @Success     200 {object} events.Event "Event stream"
// @Router      /events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	queue := make(chan events.Event, h.buffer)
	log := logger.Named("events")
	clientIP := c.ClientIP()

	unsubscribe := h.bus.Subscribe(func(e events.Event) {
		select {
		case queue <- e:
		default:
			log.Warnw("dropping event for slow client", "type", e.Type, "client_ip", clientIP)
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Content-Type", "text/event-stream")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e := <-queue:
			c.SSEvent(string(e.Type), e)
			return true
		}
	})
}
