package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"staybook/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func headerValue(km kafka.Message, key string) string {
	for _, h := range km.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("listing-1").
		WithValue(map[string]string{"booking_id": "b1"}).
		WithEventType("booking.created").
		WithCorrelationID("req-1").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if msg.GetEventID() == "" {
		t.Error("event id should be generated")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("timestamp header should be set")
	}
	if msg.GetEventType() != "booking.created" || msg.GetCorrelationID() != "req-1" {
		t.Errorf("headers = %v", msg.Headers)
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil || decoded["booking_id"] != "b1" {
		t.Errorf("DecodeValue() = %v, %v", decoded, err)
	}
}

func TestMessageBuilder_EncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if err == nil {
		t.Fatal("expected encoding error")
	}
}

func TestRetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("GetRetryCount() = %d, want 12", got)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"explicit transient", NewTransientError("retry me", nil), ErrorTypeTransient},
		{"explicit permanent", NewPermanentError("bad payload", nil), ErrorTypePermanent},
		{"wrapped deadline", fmt.Errorf("insert: %w", context.DeadlineExceeded), ErrorTypeTransient},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeTransient},
		{"decode failure", errors.New("invalid character 'x'"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("later", nil)
	if !ShouldRetry(transient, 0, 3) {
		t.Error("transient error under the limit should retry")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("retry limit reached")
	}
	if ShouldRetry(NewPermanentError("never", nil), 0, 3) {
		t.Error("permanent errors never retry")
	}
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "booking.created", log: logger.Discard()}

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	msg, _ := NewMessage().WithKey("l1").WithValue("payload").Build()
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if seenTopic != "booking.created" {
		t.Errorf("middleware saw topic %q", seenTopic)
	}
	if len(w.messages) != 1 || string(w.messages[0].Key) != "l1" {
		t.Fatalf("written = %+v", w.messages)
	}
}

func TestProducer_PublishRejectsInvalid(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}, topic: "t", log: logger.Discard()}

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key error = %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("empty value error = %v", err)
	}

	_ = p.Close()
	if err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("x")}); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("closed error = %v", err)
	}
}

func TestProducer_FailedPublishGoesToDLQ(t *testing.T) {
	writeErr := errors.New("connection refused")
	dlq := &fakeWriter{}
	p := &Producer{
		writer:    &fakeWriter{err: writeErr},
		dlqWriter: dlq,
		topic:     "booking.created",
		log:       logger.Discard(),
	}

	msg, _ := NewMessage().WithKey("l1").WithValue("payload").Build()
	err := p.Publish(context.Background(), msg)
	if !errors.Is(err, writeErr) {
		t.Fatalf("Publish() error = %v, want %v", err, writeErr)
	}

	if len(dlq.messages) != 1 {
		t.Fatalf("dlq messages = %d, want 1", len(dlq.messages))
	}
	if got := headerValue(dlq.messages[0], HeaderOriginalTopic); got != "booking.created" {
		t.Errorf("original topic header = %q", got)
	}
	if _, ok := msg.Headers[HeaderDLQError]; ok {
		t.Error("caller's headers must not be modified")
	}
}

func TestConsumer_ProcessRetriesTransientErrors(t *testing.T) {
	calls := 0
	c := &Consumer{
		topic:      "booking.created",
		maxRetries: 3,
		log:        logger.Discard(),
		handler: func(ctx context.Context, msg Message) error {
			calls++
			if calls < 3 {
				return NewTransientError("not yet", nil)
			}
			return nil
		},
	}

	if err := c.process(context.Background(), Message{Headers: map[string]string{}}); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestConsumer_ProcessSendsPermanentErrorsToDLQ(t *testing.T) {
	dlq := &fakeWriter{}
	calls := 0
	c := &Consumer{
		topic:      "booking.created",
		groupID:    "notifier",
		maxRetries: 3,
		dlqWriter:  dlq,
		log:        logger.Discard(),
		handler: func(ctx context.Context, msg Message) error {
			calls++
			return NewPermanentError("bad payload", nil)
		},
	}

	if err := c.process(context.Background(), Message{Key: "l1", Headers: map[string]string{}}); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("permanent errors should not retry, got %d calls", calls)
	}
	if len(dlq.messages) != 1 || headerValue(dlq.messages[0], "dlq-consumer-group") != "notifier" {
		t.Errorf("dlq = %+v", dlq.messages)
	}
}
