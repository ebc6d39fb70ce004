package service

import (
	"context"

	"workchat-be/internal/pkg/logger"
	"workchat-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// RoomTopic carries room-addressed frames from the broadcast coordinator to
// the forwarder. The coordinator never sees the hub directly.
const RoomTopic = "CHAT_ROOM_PUBLISH"

const metadataRoomKey = "room"

// IRealtimePublisher is the capability the coordinator depends on: publish a
// payload to a room, addressed by key, decoupled from any transport.
type IRealtimePublisher interface {
	PublishToRoom(ctx context.Context, roomKey, event string, data interface{}) error
}

type realtimePublisher struct {
	topic  string
	pubSub message.Publisher
}

func NewRealtimePublisher(topic string, pubSub message.Publisher) IRealtimePublisher {
	return &realtimePublisher{
		topic:  topic,
		pubSub: pubSub,
	}
}

func (p *realtimePublisher) PublishToRoom(ctx context.Context, roomKey, event string, data interface{}) error {
	frame, err := websocket.EncodeFrame(event, data)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), frame)
	msg.SetContext(ctx)
	msg.Metadata.Set(metadataRoomKey, roomKey)

	return p.pubSub.Publish(p.topic, msg)
}

// RoomSink is what the forwarder delivers into; satisfied by the hub.
type RoomSink interface {
	Publish(roomKey string, payload []byte)
}

type IRealtimeForwarderService interface {
	Forward(ctx context.Context) error
}

type realtimeForwarderService struct {
	pubSub *gochannel.GoChannel
	topic  string
	sink   RoomSink
	logger logger.ILogger
}

func NewRealtimeForwarderService(pubSub *gochannel.GoChannel, topic string, sink RoomSink, log logger.ILogger) IRealtimeForwarderService {
	return &realtimeForwarderService{
		pubSub: pubSub,
		topic:  topic,
		sink:   sink,
		logger: log,
	}
}

// Forward drains the room topic into the hub. Delivery is best-effort: frames
// are acked unconditionally, a failed subscriber never causes a redelivery.
func (s *realtimeForwarderService) Forward(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			room := msg.Metadata.Get(metadataRoomKey)
			if room == "" {
				s.logger.Warn("RealtimeForwarder", "Frame without room metadata dropped", nil)
				msg.Ack()
				continue
			}
			s.sink.Publish(room, msg.Payload)
			msg.Ack()
		}
	}()

	return nil
}
