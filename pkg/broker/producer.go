package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const JoinRoomEvent = "join_room"

type Producer struct {
	l             *slog.Logger
	w             *kafka.Writer
	presenceTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:             l,
		w:             w,
		presenceTopic: topic,
	}
}

type JoinRoomMessage struct {
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// JoinRoom announces that userID is listening. Failures are logged only,
// alerts still arrive through polling.
func (p *Producer) JoinRoom(ctx context.Context, userID string) {
	b, err := json.Marshal(JoinRoomMessage{UserID: userID, JoinedAt: time.Now().UTC()})
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, NewEventMessage(p.presenceTopic, JoinRoomEvent, userID, b))
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func NewEventMessage(topic, event, key string, value []byte) kafka.Message {
	return kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: EventHeader, Value: []byte(event)}},
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
