package mykafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestEncodeEvent(t *testing.T) {
	msg, err := EncodeEvent("product_events", "7", map[string]any{
		"type":      "product_created",
		"productID": 7,
		"name":      "test product",
	})
	require.NoError(t, err)

	assert.Equal(t, "product_events", msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "product_created", event["type"])
	assert.EqualValues(t, 7, event["productID"])
}

func TestPublishEvent_MarshalError(t *testing.T) {
	p, err := NewProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	defer p.Close()

	err = p.PublishEvent(context.Background(), "product_events", "1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Marshal")
}
