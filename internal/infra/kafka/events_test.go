package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
	"github.com/bikram73/Netflix-Clone/internal/infra/config"
)

type fakeAsyncProducer struct {
	input  chan *sarama.ProducerMessage
	errors chan *sarama.ProducerError
}

func newFakeAsyncProducer() *fakeAsyncProducer {
	return &fakeAsyncProducer{
		input:  make(chan *sarama.ProducerMessage, 1),
		errors: make(chan *sarama.ProducerError, 1),
	}
}

func (f *fakeAsyncProducer) AsyncClose() {}

func (f *fakeAsyncProducer) Close() error { return nil }

func (f *fakeAsyncProducer) Input() chan<- *sarama.ProducerMessage { return f.input }

func (f *fakeAsyncProducer) Successes() <-chan *sarama.ProducerMessage { return nil }

func (f *fakeAsyncProducer) Errors() <-chan *sarama.ProducerError { return f.errors }

func (f *fakeAsyncProducer) IsTransactional() bool { return false }

func (f *fakeAsyncProducer) BeginTxn() error { return nil }

func (f *fakeAsyncProducer) CommitTxn() error { return nil }

func (f *fakeAsyncProducer) AbortTxn() error { return nil }

func (f *fakeAsyncProducer) AddOffsetsToTxn(offsets map[string][]*sarama.PartitionOffsetMetadata, groupID string) error {
	return nil
}

func (f *fakeAsyncProducer) AddMessageToTxn(msg *sarama.ConsumerMessage, groupID string, metadata *string) error {
	return nil
}

func (f *fakeAsyncProducer) TxnStatus() sarama.ProducerTxnStatusFlag {
	return sarama.ProducerTxnStatusFlag(0)
}

func newTestPublisher(t *testing.T, prefix string) (*EventPublisher, *fakeAsyncProducer) {
	t.Helper()
	asyncProducer := newFakeAsyncProducer()
	producer := newProducer(asyncProducer, config.KafkaSettings{TopicPrefix: prefix}, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = producer.Close() })

	publisher := NewEventPublisher(producer, config.AppSettings{
		Name: "netflix-clone-api",
		Env:  "test",
	}, zaptest.NewLogger(t))
	return publisher, asyncProducer
}

func TestPublishUserRegistered(t *testing.T) {
	publisher, asyncProducer := newTestPublisher(t, "netflix")

	registeredAt := time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC)
	event := domain.UserRegisteredEvent{
		EventID:      "event-123",
		UserID:       "USER1730376000000ABCDEFG",
		Username:     "alice",
		Email:        "alice@example.com",
		RegisteredAt: registeredAt,
	}

	if err := publisher.PublishUserRegistered(context.Background(), event); err != nil {
		t.Fatalf("PublishUserRegistered returned error: %v", err)
	}

	select {
	case msg := <-asyncProducer.input:
		if msg.Topic != "netflix.user.registered" {
			t.Fatalf("unexpected topic: %s", msg.Topic)
		}

		key, err := msg.Key.Encode()
		if err != nil {
			t.Fatalf("Key.Encode returned error: %v", err)
		}
		if string(key) != event.UserID {
			t.Fatalf("unexpected key: %s", key)
		}

		bytes, err := msg.Value.Encode()
		if err != nil {
			t.Fatalf("Value.Encode returned error: %v", err)
		}

		var envelope map[string]any
		if err := json.Unmarshal(bytes, &envelope); err != nil {
			t.Fatalf("failed to unmarshal envelope: %v", err)
		}

		if got := envelope["event_id"]; got != event.EventID {
			t.Fatalf("unexpected event_id: %v", got)
		}
		if got := envelope["event_type"]; got != EventUserRegistered {
			t.Fatalf("unexpected event_type: %v", got)
		}
		if got := envelope["user_id"]; got != event.UserID {
			t.Fatalf("unexpected user_id: %v", got)
		}
		if got := envelope["version"]; got != schemaVersion {
			t.Fatalf("unexpected version: %v", got)
		}

		timestamp, ok := envelope["timestamp"].(string)
		if !ok {
			t.Fatalf("timestamp not a string: %T", envelope["timestamp"])
		}
		if timestamp != registeredAt.Format(time.RFC3339Nano) {
			t.Fatalf("unexpected timestamp: %s", timestamp)
		}

		payload, ok := envelope["payload"].(map[string]any)
		if !ok {
			t.Fatalf("payload not a map: %T", envelope["payload"])
		}
		if got := payload["userid"]; got != event.UserID {
			t.Fatalf("unexpected payload.userid: %v", got)
		}
		if got := payload["username"]; got != event.Username {
			t.Fatalf("unexpected username: %v", got)
		}
		if got := payload["email"]; got != event.Email {
			t.Fatalf("unexpected email: %v", got)
		}
		if _, exists := payload["password_hash"]; exists {
			t.Fatal("payload must not carry the password hash")
		}

		metadata, ok := envelope["metadata"].(map[string]any)
		if !ok {
			t.Fatalf("metadata not a map: %T", envelope["metadata"])
		}
		if got := metadata["service"]; got != "netflix-clone-api" {
			t.Fatalf("unexpected metadata.service: %v", got)
		}
		if got := metadata["environment"]; got != "test" {
			t.Fatalf("unexpected metadata.environment: %v", got)
		}
		if _, exists := metadata["trace_id"]; exists {
			t.Fatal("trace_id should be absent without an active span")
		}
	case <-time.After(time.Second):
		t.Fatal("expected message to be published")
	}
}

func TestPublishUserRegisteredCarriesTraceID(t *testing.T) {
	publisher, asyncProducer := newTestPublisher(t, "")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	err := publisher.PublishUserRegistered(ctx, domain.UserRegisteredEvent{
		UserID:   "USER1",
		Username: "bob",
		Email:    "bob@example.com",
	})
	if err != nil {
		t.Fatalf("PublishUserRegistered returned error: %v", err)
	}

	select {
	case msg := <-asyncProducer.input:
		if msg.Topic != EventUserRegistered {
			t.Fatalf("unexpected topic without prefix: %s", msg.Topic)
		}

		bytes, err := msg.Value.Encode()
		if err != nil {
			t.Fatalf("Value.Encode returned error: %v", err)
		}
		var envelope struct {
			EventID   string            `json:"event_id"`
			Timestamp time.Time         `json:"timestamp"`
			Metadata  map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(bytes, &envelope); err != nil {
			t.Fatalf("failed to unmarshal envelope: %v", err)
		}
		if envelope.Metadata["trace_id"] != traceID.String() {
			t.Fatalf("unexpected trace_id: %q", envelope.Metadata["trace_id"])
		}
		if envelope.EventID == "" {
			t.Fatal("expected generated event id")
		}
		if envelope.Timestamp.IsZero() {
			t.Fatal("expected timestamp to default to now")
		}
	case <-time.After(time.Second):
		t.Fatal("expected message to be published")
	}
}

func TestPublishUserRegisteredHonoursCancelledContext(t *testing.T) {
	publisher, asyncProducer := newTestPublisher(t, "netflix")

	// Fill the buffered input so the next send blocks.
	asyncProducer.input <- &sarama.ProducerMessage{Topic: "filler"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.PublishUserRegistered(ctx, domain.UserRegisteredEvent{UserID: "USER1"})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTopicName(t *testing.T) {
	cases := []struct {
		prefix    string
		eventType string
		want      string
	}{
		{prefix: "", eventType: "user.registered", want: "user.registered"},
		{prefix: "netflix", eventType: "user.registered", want: "netflix.user.registered"},
		{prefix: "netflix", eventType: "netflix.user.registered", want: "netflix.user.registered"},
	}

	for _, tc := range cases {
		p := &Producer{cfg: config.KafkaSettings{TopicPrefix: tc.prefix}}
		if got := p.TopicName(tc.eventType); got != tc.want {
			t.Errorf("TopicName(%q) with prefix %q = %q, want %q", tc.eventType, tc.prefix, got, tc.want)
		}
	}
}

func TestStubPublisherMasksEmail(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewStubPublisher(zap.New(core))

	err := publisher.PublishUserRegistered(context.Background(), domain.UserRegisteredEvent{
		UserID:       "USER1",
		Email:        "alice@example.com",
		RegisteredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("stub publisher returned error: %v", err)
	}

	entries := logs.FilterMessage("stub event published").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["email"] == "alice@example.com" {
		t.Fatal("email must be masked in logs")
	}
	if fields["event_type"] != EventUserRegistered {
		t.Fatalf("unexpected event_type field: %v", fields["event_type"])
	}
}
