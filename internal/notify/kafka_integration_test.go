//go:build integration

package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"tally/internal/notify"
	"tally/pkg/testutil/containers"
)

func TestKafkaSinkDeliversInOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	broker := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const topic = "tally.election.events.test"
	sink, err := notify.NewKafkaSink(broker.Brokers, topic)
	require.NoError(t, err)
	defer sink.Close()
	require.NoError(t, sink.EnsureTopic(ctx, 1, 1))
	require.NoError(t, sink.EnsureTopic(ctx, 1, 1), "existing topic is accepted")

	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	events := []notify.Event{
		notify.NewEvent("voter_registered", "alice", now, map[string]string{"identity": "alice"}),
		notify.NewEvent("vote_cast", "alice", now.Add(time.Minute), map[string]any{"identity": "alice", "candidate_id": 0}),
	}
	require.NoError(t, sink.Deliver(ctx, events))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var got []notify.Event
	var headers []string
	for len(got) < len(events) {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			var e notify.Event
			require.NoError(t, json.Unmarshal(r.Value, &e))
			got = append(got, e)
			headers = append(headers, string(r.Headers[0].Value))
			assert.Equal(t, "alice", string(r.Key))
		})
	}
	assert.Equal(t, []string{"voter_registered", "vote_cast"}, headers)
	assert.Equal(t, events[0].ID, got[0].ID)
	assert.Equal(t, events[1].ID, got[1].ID)
}
