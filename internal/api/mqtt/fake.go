package mqtt

import "sync"

// Message is a publication recorded by FakeClient.
type Message struct {
	Topic    string
	Payload  string
	Retained bool
}

// FakeClient records publications and lets tests deliver messages.
type FakeClient struct {
	mu sync.Mutex

	// Published contains every message passed to Publish.
	Published []Message

	// PublishError, if set, is returned by Publish.
	PublishError error

	// SubscribeError, if set, is returned by Subscribe.
	SubscribeError error

	// Closed tracks whether Close was called.
	Closed bool

	handlers map[string]func(topic string, payload []byte)
}

// NewFakeClient creates an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{handlers: make(map[string]func(string, []byte))}
}

// Publish records the message.
func (f *FakeClient) Publish(topic string, retained bool, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PublishError != nil {
		return f.PublishError
	}

	f.Published = append(f.Published, Message{Topic: topic, Payload: string(payload), Retained: retained})

	return nil
}

// Subscribe stores the handler.
func (f *FakeClient) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SubscribeError != nil {
		return f.SubscribeError
	}

	f.handlers[topic] = handler

	return nil
}

// Close marks the client closed.
func (f *FakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Closed = true

	return nil
}

// Deliver invokes the handler subscribed to topic and reports whether one existed.
func (f *FakeClient) Deliver(topic, payload string) bool {
	f.mu.Lock()
	handler, ok := f.handlers[topic]
	f.mu.Unlock()

	if !ok {
		return false
	}

	handler(topic, []byte(payload))

	return true
}

// Last returns the most recent payload published on topic.
func (f *FakeClient) Last(topic string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.Published) - 1; i >= 0; i-- {
		if f.Published[i].Topic == topic {
			return f.Published[i].Payload, true
		}
	}

	return "", false
}
