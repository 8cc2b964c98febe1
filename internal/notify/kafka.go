package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/pkg/broker"
	"github.com/samandr77/docflow/pkg/config"
)

const NewAlertEvent = "new_alert"

type KafkaTransport struct {
	cfg      config.Kafka
	instance string
}

func NewKafkaTransport(cfg config.Kafka) *KafkaTransport {
	return &KafkaTransport{
		cfg:      cfg,
		instance: uuid.Must(uuid.NewV4()).String(),
	}
}

// groupID is unique per process so every client of the same user reads all
// partitions of the alerts topic.
func (t *KafkaTransport) groupID(userID string) string {
	return t.cfg.GroupPrefix + "-" + userID + "-" + t.instance
}

// Open reads the alerts topic in a group of its own, one room per user and
// process, and announces the user on the presence topic.
func (t *KafkaTransport) Open(ctx context.Context, userID string, onAlert func(context.Context, entity.Alert)) (Conn, error) {
	if userID == "" {
		return nil, fmt.Errorf("open push channel: %w", entity.ErrNoSession)
	}

	consumer := broker.NewConsumer(t.cfg.Brokers, t.groupID(userID), t.cfg.AlertsTopic).
		Handle(NewAlertEvent, func(ctx context.Context, m kafka.Message) error {
			alert, ok, err := decodeAlert(userID, m)
			if err != nil {
				return err
			}

			if ok {
				onAlert(ctx, alert)
			}

			return nil
		}).
		Consume(ctx)

	producer := broker.NewProducer(slog.Default(), t.cfg.Brokers, t.cfg.PresenceTopic)
	producer.JoinRoom(ctx, userID)

	return &kafkaConn{consumer: consumer, producer: producer}, nil
}

// decodeAlert returns ok=false for alerts addressed to somebody else.
func decodeAlert(userID string, m kafka.Message) (entity.Alert, bool, error) {
	if string(m.Key) != userID {
		return entity.Alert{}, false, nil
	}

	var alert entity.Alert
	if err := json.Unmarshal(m.Value, &alert); err != nil {
		return entity.Alert{}, false, fmt.Errorf("decode alert: %w", err)
	}

	return alert, true, nil
}

type kafkaConn struct {
	consumer *broker.Consumer
	producer *broker.Producer
}

func (c *kafkaConn) Close() {
	c.consumer.Close()
	c.producer.Close()
}
