package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/config"
)

type fakeProducer struct {
	mu      sync.Mutex
	sent    []*kafka.Message
	err     error
	events  chan kafka.Event
	flushed bool
	closed  bool
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{events: make(chan kafka.Event, 1)}
}

func (f *fakeProducer) Produce(msg *kafka.Message, _ chan kafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeProducer) Events() chan kafka.Event { return f.events }

func (f *fakeProducer) Flush(int) int {
	f.flushed = true
	return 0
}

func (f *fakeProducer) Close() {
	f.closed = true
	close(f.events)
}

type MockLifecycleHandler struct {
	mock.Mock
}

func (m *MockLifecycleHandler) EnsureProfile(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockLifecycleHandler) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestTopic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TopicProfileCreated, Topic(EventProfileCreated))
	assert.Equal(t, TopicProfileUpdated, Topic(EventProfileUpdated))
	assert.Equal(t, TopicProfileDeleted, Topic(EventProfileDeleted))
}

func TestNewProfileEvent(t *testing.T) {
	t.Parallel()

	e := NewProfileEvent(EventProfileUpdated, "user-1", "income")

	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, "income", e.SectionName)
	assert.WithinDuration(t, time.Now(), e.Timestamp, time.Minute)

	payload, err := json.Marshal(NewProfileEvent(EventProfileDeleted, "user-1", ""))
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "sectionName")
	assert.Contains(t, string(payload), `"eventType":"PROFILE_DELETED"`)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Parallel()

	fp := newFakeProducer()
	pub := newKafkaPublisher(fp)

	event := NewProfileEvent(EventProfileCreated, "user-1", "")
	require.NoError(t, pub.Publish(context.Background(), event))

	require.Len(t, fp.sent, 1)
	msg := fp.sent[0]
	assert.Equal(t, TopicProfileCreated, *msg.TopicPartition.Topic)
	assert.Equal(t, kafka.PartitionAny, msg.TopicPartition.Partition)
	assert.Equal(t, []byte("user-1"), msg.Key)

	var decoded ProfileEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, EventProfileCreated, decoded.EventType)

	pub.Close()
	assert.True(t, fp.flushed)
	assert.True(t, fp.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	t.Parallel()

	fp := newFakeProducer()
	fp.err = errors.New("queue full")
	pub := newKafkaPublisher(fp)
	defer pub.Close()

	err := pub.Publish(context.Background(), NewProfileEvent(EventProfileUpdated, "user-1", ""))

	assert.ErrorContains(t, err, "queue full")
	assert.ErrorContains(t, err, TopicProfileUpdated)
}

func TestNoopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewProfileEvent(EventProfileCreated, "user-1", "")))
	p.Close()
}

func TestConfigMap(t *testing.T) {
	t.Parallel()

	plain := configMap(config.KafkaConfig{BootstrapServers: "localhost:9092", SecurityProtocol: "PLAINTEXT"})
	v, err := plain.Get("bootstrap.servers", nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9092", v)
	v, err = plain.Get("sasl.username", nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	secured := configMap(config.KafkaConfig{
		BootstrapServers: "broker:9093",
		SecurityProtocol: "SASL_SSL",
		SASLUsername:     "finance",
		SASLPassword:     "secret",
	})
	v, err = secured.Get("sasl.username", nil)
	require.NoError(t, err)
	assert.Equal(t, "finance", v)
	v, err = secured.Get("sasl.mechanisms", nil)
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", v)
}

func TestConsumer_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		topic     string
		value     string
		setupMock func(*MockLifecycleHandler)
		wantErr   bool
	}{
		{
			name:  "user registered creates shell",
			topic: TopicUserRegistered,
			value: `{"userId":"user-1","email":"a@b.c"}`,
			setupMock: func(m *MockLifecycleHandler) {
				m.On("EnsureProfile", mock.Anything, "user-1").Return(nil)
			},
		},
		{
			name:  "user registered failure",
			topic: TopicUserRegistered,
			value: `{"userId":"user-1"}`,
			setupMock: func(m *MockLifecycleHandler) {
				m.On("EnsureProfile", mock.Anything, "user-1").Return(errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name:  "user deleted removes profile",
			topic: TopicUserDeleted,
			value: `{"userId":"user-1"}`,
			setupMock: func(m *MockLifecycleHandler) {
				m.On("Delete", mock.Anything, "user-1").Return(nil)
			},
		},
		{
			name:  "user deleted without profile is ignored",
			topic: TopicUserDeleted,
			value: `{"userId":"user-1"}`,
			setupMock: func(m *MockLifecycleHandler) {
				m.On("Delete", mock.Anything, "user-1").Return(fmt.Errorf("delete: %w", apperror.ProfileNotFound()))
			},
		},
		{
			name:      "malformed payload",
			topic:     TopicUserRegistered,
			value:     `{not json`,
			setupMock: func(*MockLifecycleHandler) {},
			wantErr:   true,
		},
		{
			name:      "missing user id",
			topic:     TopicUserDeleted,
			value:     `{}`,
			setupMock: func(*MockLifecycleHandler) {},
			wantErr:   true,
		},
		{
			name:      "unexpected topic",
			topic:     "something.else",
			value:     `{"userId":"user-1"}`,
			setupMock: func(*MockLifecycleHandler) {},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := new(MockLifecycleHandler)
			tt.setupMock(h)
			c := newConsumer(nil, h)

			err := c.Handle(context.Background(), tt.topic, []byte(tt.value))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			h.AssertExpectations(t)
		})
	}
}

type fakeReader struct {
	messages   []*kafka.Message
	onDrained  func()
	subscribed []string
	closed     bool
}

func (f *fakeReader) SubscribeTopics(topics []string, _ kafka.RebalanceCb) error {
	f.subscribed = topics
	return nil
}

func (f *fakeReader) ReadMessage(time.Duration) (*kafka.Message, error) {
	if len(f.messages) == 0 {
		f.onDrained()
		return nil, kafka.NewError(kafka.ErrTimedOut, "timed out", false)
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestConsumer_Run(t *testing.T) {
	t.Parallel()

	registered := TopicUserRegistered
	deleted := TopicUserDeleted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		messages: []*kafka.Message{
			{TopicPartition: kafka.TopicPartition{Topic: &registered}, Value: []byte(`{"userId":"user-1"}`)},
			{TopicPartition: kafka.TopicPartition{Topic: &registered}, Value: []byte(`garbage`)},
			{TopicPartition: kafka.TopicPartition{Topic: &deleted}, Value: []byte(`{"userId":"user-2"}`)},
		},
		onDrained: cancel,
	}
	h := new(MockLifecycleHandler)
	h.On("EnsureProfile", mock.Anything, "user-1").Return(nil).Once()
	h.On("Delete", mock.Anything, "user-2").Return(nil).Once()

	err := newConsumer(r, h).Run(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{TopicUserRegistered, TopicUserDeleted}, r.subscribed)
	assert.True(t, r.closed)
	h.AssertExpectations(t)
}
