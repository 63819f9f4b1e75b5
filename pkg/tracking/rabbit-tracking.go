package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/Await-0x/RealmsWorld/pkg/common"
	"github.com/Await-0x/RealmsWorld/pkg/messaging"
	"github.com/Await-0x/RealmsWorld/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingPrefix = "global"

// RabbitTracking publishes events in batches, one message per batch.
type RabbitTracking struct {
	chain      string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(conn *amqp.Connection, chain string) (*RabbitTracking, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, trackingPrefix, messaging.Tracking); err != nil {
		return nil, err
	}
	rt := &RabbitTracking{connection: conn, chain: chain}
	rt.queue = common.NewQueueHandler(rt.publish, 100, 2*time.Second)
	return rt, nil
}

// Close flushes queued events. The connection is shared and closed by its
// owner.
func (rt *RabbitTracking) Close() error {
	rt.queue.Close()
	return nil
}

func (rt *RabbitTracking) publish(events []any) {
	if err := messaging.SendChange(rt.connection, trackingPrefix, messaging.Tracking, events); err != nil {
		log.Printf("failed to send %d tracking events: %v", len(events), err)
	}
}

func (rt *RabbitTracking) send(data any) {
	rt.queue.Add(data)
}

func (rt *RabbitTracking) base(sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{SessionId: sessionId, Chain: rt.chain, Event: event}
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	rt.send(Session{
		BaseEvent:    rt.base(sessionId, eventSession),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

func (rt *RabbitTracking) TrackPage(sessionId string, collectionId string, query string, totalHits int, r *http.Request) {
	rt.send(PageEvent{
		BaseEvent:       rt.base(sessionId, eventPage),
		CollectionId:    collectionId,
		Query:           query,
		NumberOfResults: totalHits,
		Referer:         r.Header.Get("Referer"),
	})
}

func (rt *RabbitTracking) TrackToggle(sessionId string, event types.ToggleEvent) {
	rt.send(ToggleEventData{
		BaseEvent:    rt.base(sessionId, eventToggle),
		CollectionId: event.CollectionId,
		Key:          event.Key,
		Value:        event.Value,
		Added:        event.Added,
	})
}
