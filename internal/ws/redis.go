package ws

import (
	"context"
	"encoding/json"

	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/redis/go-redis/v9"
)

// EventsChannel carries frames between instances.
const EventsChannel = "game_events"

// FrameMessage is the wire form of a frame, on Redis and on the websocket.
type FrameMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id"`
	Frame     *game.Frame `json:"frame"`
}

// Publisher sends frames through Redis when it is configured so every
// instance's hub sees them, and straight to the local hub otherwise.
type Publisher struct {
	hub *Hub
	rdb *redis.Client
}

func NewPublisher(hub *Hub, rdb *redis.Client) *Publisher {
	return &Publisher{hub: hub, rdb: rdb}
}

// PublishFrame implements game.FramePublisher.
func (p *Publisher) PublishFrame(ctx context.Context, f *game.Frame) {
	msg := FrameMessage{Type: "frame", SessionID: f.SessionID, Frame: f}
	data, err := json.Marshal(msg)
	if err != nil {
		logging.S().Errorf("[WS] error marshaling frame for %s: %v", f.SessionID, err)
		return
	}
	if p.rdb != nil {
		err := p.rdb.Publish(ctx, EventsChannel, data).Err()
		if err == nil {
			return
		}
		logging.S().Warnf("[REDIS] publish frame for %s failed, delivering locally: %v", f.SessionID, err)
	}
	p.hub.broadcastRaw(f.SessionID, data)
}

// RunEventSubscriber forwards game_events payloads to the local hub until ctx
// is done.
func RunEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) error {
	if rdb == nil {
		logging.S().Info("[WS] Redis client not set; event subscriber not started")
		<-ctx.Done()
		return nil
	}

	pubsub := rdb.Subscribe(ctx, EventsChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()
	logging.S().Infof("[WS] %s subscriber started", EventsChannel)

	for {
		select {
		case <-ctx.Done():
			logging.S().Infof("[WS] %s subscriber stopping", EventsChannel)
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			forwardEvent(hub, []byte(msg.Payload))
		}
	}
}

// forwardEvent routes one raw payload by its session_id.
func forwardEvent(hub *Hub, payload []byte) {
	var envelope struct {
		Type      string `json:"type"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		logging.S().Warnf("[WS] invalid event payload: %v", err)
		return
	}
	if envelope.SessionID == "" {
		logging.S().Warnf("[WS] event %q without session_id dropped", envelope.Type)
		return
	}
	hub.broadcastRaw(envelope.SessionID, payload)
}
