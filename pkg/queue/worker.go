package queue

import (
	"context"
	"sync"

	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

// Publisher is the part of *amqp.Channel the worker publishes replies through.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Worker consumes scoring requests and publishes replies.
type Worker struct {
	cfg     config.QueueConfig
	handler *Handler
}

// NewWorker creates a worker for the configured queues.
func NewWorker(cfg config.QueueConfig, handler *Handler) (w *Worker) {
	w = &Worker{cfg: cfg, handler: handler}
	return w
}

// Run connects to the broker and processes deliveries until ctx is cancelled or
// the delivery channel closes.
func (w *Worker) Run(ctx context.Context) (err error) {
	if w.cfg.URL == "" {
		err = errors.New("queue url is required (set queue.url or AMQP_URL)")
		return err
	}

	var conn *amqp.Connection
	conn, err = amqp.Dial(w.cfg.URL)
	if err != nil {
		err = errors.Wrap(err, "error dialling rabbitmq")
		return err
	}
	defer conn.Close()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	var ch *amqp.Channel
	ch, err = conn.Channel()
	if err != nil {
		err = errors.Wrap(err, "error opening rabbitmq channel")
		return err
	}
	defer ch.Close()

	for _, name := range []string{w.cfg.RequestQueue, w.cfg.ResultQueue} {
		_, err = ch.QueueDeclare(
			name,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			err = errors.Wrapf(err, "failed to declare queue %s", name)
			return err
		}
	}

	err = ch.Qos(w.cfg.Prefetch, 0, false)
	if err != nil {
		err = errors.Wrap(err, "failed to set prefetch")
		return err
	}

	var deliveries <-chan amqp.Delivery
	deliveries, err = ch.Consume(
		w.cfg.RequestQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		err = errors.Wrap(err, "error consuming rabbitmq messages")
		return err
	}

	log.Info().
		Str("request_queue", w.cfg.RequestQueue).
		Str("result_queue", w.cfg.ResultQueue).
		Int("workers", w.cfg.Prefetch).
		Msg("Worker consuming")

	err = w.consume(ctx, ch, deliveries, closed)
	if err != nil {
		return err
	}

	log.Info().Msg("Worker stopped")
	return err
}

// consume runs one goroutine per prefetch slot. It returns nil once ctx is
// cancelled, and an error if the deliveries stop while ctx is still live.
func (w *Worker) consume(ctx context.Context, pub Publisher, deliveries <-chan amqp.Delivery, closed <-chan *amqp.Error) (err error) {
	workers := w.cfg.Prefetch
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)

	for n := 0; n < workers; n++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					w.process(pub, d)
				}
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return err
	}

	select {
	case amqpErr, ok := <-closed:
		if ok && amqpErr != nil {
			err = errors.Wrap(amqpErr, "rabbitmq connection closed")
			return err
		}
	default:
	}

	err = errors.New("rabbitmq delivery channel closed")
	return err
}

// process scores one delivery and publishes the reply. The delivery is acked once
// the reply is published, and requeued if publishing fails.
func (w *Worker) process(pub Publisher, d amqp.Delivery) {
	reply := w.handler.Process(d.Body)

	out := w.handler.encode(reply)

	routingKey := d.ReplyTo
	if routingKey == "" {
		routingKey = w.cfg.ResultQueue
	}

	correlationID := d.CorrelationId
	if correlationID == "" {
		correlationID = reply.ID
	}

	err := pub.Publish(
		"", // default exchange routes by queue name
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			DeliveryMode:  amqp.Persistent,
			Body:          out,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("id", reply.ID).Msg("Failed to publish reply")
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error().Err(nackErr).Str("id", reply.ID).Msg("Failed to requeue delivery")
		}
		return
	}

	if ackErr := d.Ack(false); ackErr != nil {
		log.Error().Err(ackErr).Str("id", reply.ID).Msg("Failed to ack delivery")
		return
	}

	if reply.Error != "" {
		log.Warn().Str("id", reply.ID).Str("reply_to", routingKey).Str("error", reply.Error).Msg("Rejected scoring request")
		return
	}

	log.Info().
		Str("id", reply.ID).
		Str("reply_to", routingKey).
		Int("composite_score", reply.Result.CompositeScore).
		Msg("Processed scoring request")
}
