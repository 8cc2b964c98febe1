package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/pkg/config"
)

func TestDecodeAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     kafka.Message
		want    entity.Alert
		wantOK  bool
		wantErr bool
	}{
		{
			name:   "own alert",
			msg:    kafka.Message{Key: []byte("u1"), Value: []byte(`{"_id":"al1","message":"Document approved","link":"/document/d1"}`)},
			want:   entity.Alert{ID: "al1", Message: "Document approved", Link: "/document/d1"},
			wantOK: true,
		},
		{
			name: "someone else's alert",
			msg:  kafka.Message{Key: []byte("u2"), Value: []byte(`{"_id":"al2"}`)},
		},
		{
			name:    "garbage",
			msg:     kafka.Message{Key: []byte("u1"), Value: []byte(`{`)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)

			got, ok, err := decodeAlert("u1", tt.msg)
			if tt.wantErr {
				r.Error(err)
				return
			}

			r.NoError(err)
			r.Equal(tt.wantOK, ok)
			r.Equal(tt.want, got)
		})
	}
}

func TestKafkaTransport_RequiresUser(t *testing.T) {
	t.Parallel()

	tr := NewKafkaTransport(config.Kafka{Brokers: []string{"localhost:9092"}})

	_, err := tr.Open(context.Background(), "", func(context.Context, entity.Alert) {})
	require.ErrorIs(t, err, entity.ErrNoSession)
}

func TestKafkaTransport_GroupPerProcess(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	cfg := config.Kafka{Brokers: []string{"localhost:9092"}, GroupPrefix: "docflow"}

	first := NewKafkaTransport(cfg).groupID("u1")
	second := NewKafkaTransport(cfg).groupID("u1")

	r.True(strings.HasPrefix(first, "docflow-u1-"))
	r.NotEqual(first, second, "two clients of one user must not share partitions")
}
