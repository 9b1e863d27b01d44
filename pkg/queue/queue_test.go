package queue

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeRequest = `{"id": "req-1", "job_description": "Looking for a Python developer with SQL and leadership skills",
	"resume": {"contact": {"name": "Jane Doe", "email": "jane@x.com", "phone": "555-1234", "location": "NYC"},
	"summary": "Increased sales by 25% over one year.", "skills": ["Python", "SQL"]}}`

type fakePublisher struct {
	mu        sync.Mutex
	keys      []string
	published []amqp.Publishing
	err       error
}

func (p *fakePublisher) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.published = append(p.published, msg)
	return nil
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAcknowledger) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked++
	return nil
}

func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	return a.Nack(0, false, requeue)
}

func testWorker() (w *Worker) {
	w = NewWorker(config.Default().Queue, NewHandler(scorer.NewScorer()))
	return w
}

func TestHandlerProcess(t *testing.T) {
	reply := NewHandler(scorer.NewScorer()).Process([]byte(janeRequest))

	assert.Equal(t, "req-1", reply.ID)
	assert.Empty(t, reply.Error)
	require.NotNil(t, reply.Result)
	assert.Equal(t, 75, reply.Result.CompositeScore)
}

func TestHandlerHandleEncodesReply(t *testing.T) {
	out := NewHandler(scorer.NewScorer()).Handle([]byte(janeRequest))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "req-1", decoded["id"])
	assert.Contains(t, decoded, "result")
	assert.NotContains(t, decoded, "error")
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "malformed message", body: "{not json"},
		{name: "missing resume", body: `{"id": "x", "job_description": "Go"}`, wantField: "resume"},
		{name: "resume wrong shape", body: `{"id": "x", "resume": {"experience": "lots"}}`, wantField: "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := NewHandler(scorer.NewScorer()).Process([]byte(tt.body))

			assert.NotEmpty(t, reply.ID)
			assert.NotEmpty(t, reply.Error)
			assert.Nil(t, reply.Result)
			assert.Equal(t, tt.wantField, reply.Field)
		})
	}
}

func TestHandlerAssignsID(t *testing.T) {
	reply := NewHandler(scorer.NewScorer()).Process([]byte(`{"resume": {}}`))

	_, err := uuid.Parse(reply.ID)
	assert.NoError(t, err)
	require.NotNil(t, reply.Result)
	assert.Equal(t, 20, reply.Result.CompositeScore)
}

func TestProcessRepliesToResultQueue(t *testing.T) {
	pub := &fakePublisher{}
	ack := &fakeAcknowledger{}

	testWorker().process(pub, amqp.Delivery{Acknowledger: ack, Body: []byte(janeRequest)})

	require.Len(t, pub.published, 1)
	assert.Equal(t, "ats.score.results", pub.keys[0])
	assert.Equal(t, "req-1", pub.published[0].CorrelationId)
	assert.Equal(t, "application/json", pub.published[0].ContentType)
	assert.Equal(t, 1, ack.acked)

	var reply Reply
	require.NoError(t, json.Unmarshal(pub.published[0].Body, &reply))
	require.NotNil(t, reply.Result)
	assert.Equal(t, 75, reply.Result.CompositeScore)
}

func TestProcessHonorsReplyTo(t *testing.T) {
	pub := &fakePublisher{}
	ack := &fakeAcknowledger{}

	delivery := amqp.Delivery{
		Acknowledger:  ack,
		Body:          []byte(janeRequest),
		ReplyTo:       "amq.rabbitmq.reply-to",
		CorrelationId: "corr-9",
	}
	testWorker().process(pub, delivery)

	require.Len(t, pub.published, 1)
	assert.Equal(t, "amq.rabbitmq.reply-to", pub.keys[0])
	assert.Equal(t, "corr-9", pub.published[0].CorrelationId)
}

func TestProcessAcksMalformed(t *testing.T) {
	pub := &fakePublisher{}
	ack := &fakeAcknowledger{}

	testWorker().process(pub, amqp.Delivery{Acknowledger: ack, Body: []byte("garbage")})

	assert.Equal(t, 1, ack.acked)
	assert.Equal(t, 0, ack.nacked)
	require.Len(t, pub.published, 1)

	var reply Reply
	require.NoError(t, json.Unmarshal(pub.published[0].Body, &reply))
	assert.Contains(t, reply.Error, "malformed message")
}

func TestProcessRequeuesWhenPublishFails(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	ack := &fakeAcknowledger{}

	testWorker().process(pub, amqp.Delivery{Acknowledger: ack, Body: []byte(janeRequest)})

	assert.Equal(t, 0, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestConsumeDrainsUntilClosed(t *testing.T) {
	pub := &fakePublisher{}
	ack := &fakeAcknowledger{}

	deliveries := make(chan amqp.Delivery, 5)
	for n := 0; n < 5; n++ {
		deliveries <- amqp.Delivery{Acknowledger: ack, Body: []byte(janeRequest)}
	}
	close(deliveries)

	done := make(chan error, 1)
	go func() {
		done <- testWorker().consume(context.Background(), pub, deliveries, nil)
	}()

	select {
	case err := <-done:
		assert.EqualError(t, err, "rabbitmq delivery channel closed")
	case <-time.After(5 * time.Second):
		t.Fatal("consume did not return after the channel closed")
	}

	assert.Equal(t, 5, ack.acked)
	assert.Len(t, pub.published, 5)
}

func TestConsumeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deliveries := make(chan amqp.Delivery)

	done := make(chan error, 1)
	go func() {
		done <- testWorker().consume(ctx, &fakePublisher{}, deliveries, nil)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consume did not return after cancel")
	}
}

func TestConsumeReportsConnectionLoss(t *testing.T) {
	deliveries := make(chan amqp.Delivery)
	closed := make(chan *amqp.Error, 1)

	closed <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker shutdown"}
	close(deliveries)

	err := testWorker().consume(context.Background(), &fakePublisher{}, deliveries, closed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq connection closed")
	assert.Contains(t, err.Error(), "broker shutdown")
}

func TestRunRequiresURL(t *testing.T) {
	err := testWorker().Run(context.Background())
	assert.Error(t, err)
}
