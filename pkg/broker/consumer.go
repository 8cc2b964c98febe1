package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

// EventHeader names the event a message carries. Messages without it are
// dispatched by topic.
const EventHeader = "event"

type Handler func(context.Context, kafka.Message) error

type Consumer struct {
	l        *slog.Logger
	r        *kafka.Reader
	wg       *sync.WaitGroup
	handlers map[string]Handler
}

// NewConsumer joins groupID and starts from the newest offset when the group
// has no committed position yet.
func NewConsumer(
	brokers []string,
	groupID string,
	topics ...string,
) *Consumer {
	l := slog.Default().WithGroup("kafka").With("group_id", groupID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		StartOffset: kafka.LastOffset,
		Logger:      &infoLogger{l: l},
		ErrorLogger: &errorLogger{l: l},
	})

	return &Consumer{
		l:        l,
		r:        r,
		wg:       &sync.WaitGroup{},
		handlers: make(map[string]Handler),
	}
}

func (c *Consumer) Handle(event string, handler Handler) *Consumer {
	c.handlers[event] = handler
	return c
}

func (c *Consumer) Consume(ctx context.Context) *Consumer {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		for {
			m, err := c.r.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					c.l.Info("consumer stopped")
					return
				}

				c.l.Error(fmt.Sprintf("read kafka msg: %s", err))

				continue
			}

			if err := c.dispatch(ctx, m); err != nil {
				c.l.Error(fmt.Sprintf("handler kafka msg: %s", err))
			}
		}
	}()

	return c
}

func (c *Consumer) dispatch(ctx context.Context, m kafka.Message) error {
	name := EventName(m)

	handler, ok := c.handlers[name]
	if !ok {
		c.l.Warn("kafka handler not found", "event", name)
		return nil
	}

	return handler(ctx, m)
}

func (c *Consumer) Close() {
	err := c.r.Close()
	if err != nil {
		c.l.Error(fmt.Sprintf("close kafka reader: %s", err))
	}

	c.wg.Wait()
}

func EventName(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == EventHeader {
			return string(h.Value)
		}
	}

	return m.Topic
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
