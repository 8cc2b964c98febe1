package broker_test

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/docflow/pkg/broker"
)

func TestEventName(t *testing.T) {
	t.Parallel()

	m := broker.NewEventMessage("alerts", "new_alert", "u1", []byte(`{}`))

	require.Equal(t, "alerts", m.Topic)
	require.Equal(t, []byte("u1"), m.Key)
	require.Equal(t, "new_alert", broker.EventName(m))

	require.Equal(t, "alerts", broker.EventName(kafka.Message{Topic: "alerts"}))
}
