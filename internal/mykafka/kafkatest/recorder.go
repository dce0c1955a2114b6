// Package kafkatest provides an in-memory mykafka.Publisher for tests.
package kafkatest

import (
	"context"
	"encoding/json"
	"sync"
)

type Event struct {
	Topic string
	Key   string
	Body  map[string]any
}

type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	if r.Err != nil {
		return r.Err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Topic: topic, Key: key, Body: body})
	return nil
}

// Types lists the "type" field of every event published to topic, in order.
func (r *Recorder) Types(topic string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Topic == topic {
			t, _ := e.Body["type"].(string)
			out = append(out, t)
		}
	}
	return out
}
