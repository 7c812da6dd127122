package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/utils"
)

const publishTimeout = 5 * time.Second

// FormPublisher publishes each form as a persistent JSON message on a durable queue.
type FormPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	legacy bool
	logger *logging.SafeLogger
}

// NewFormPublisher dials uri and declares queue.
func NewFormPublisher(uri, queue string, legacy bool, logger *logging.SafeLogger) (*FormPublisher, error) {
	if logger == nil {
		logger = logging.Logger
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	logger.Info("connected to RabbitMQ", zap.String("queue", queue))
	return &FormPublisher{conn: conn, ch: ch, queue: queue, legacy: legacy, logger: logger}, nil
}

// Write publishes forms in order. The channel is shared, so publishes are serialized.
func (p *FormPublisher) Write(ctx context.Context, forms []models.Form) error {
	ctx, span, done := utils.TracePublishOperation(ctx, p.queue, len(forms))
	defer done()

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, form := range forms {
		msg, err := p.message(form)
		if err != nil {
			utils.RecordErrorInSpan(span, err, nil)
			observability.SinkOperations.WithLabelValues("amqp", "error").Inc()
			return err
		}

		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err = p.ch.PublishWithContext(pubCtx,
			"",      // default exchange
			p.queue, // routing key
			false,   // mandatory
			false,   // immediate
			msg,
		)
		cancel()
		if err != nil {
			utils.RecordErrorInSpan(span, err, nil)
			observability.SinkOperations.WithLabelValues("amqp", "error").Inc()
			return fmt.Errorf("publish form %s: %w", msg.MessageId, err)
		}
	}

	observability.SinkOperations.WithLabelValues("amqp", "ok").Inc()
	return nil
}

func (p *FormPublisher) message(form models.Form) (amqp.Publishing, error) {
	header := form.Header()
	body, err := json.Marshal(Payload(form, p.legacy))
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode form %s: %w", header.ID, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    header.ID,
		Timestamp:    time.Now(),
		Body:         body,
		Headers: amqp.Table{
			"document_type": string(header.DocumentType),
			"seed":          strconv.FormatInt(header.Seed, 10),
		},
	}, nil
}

// Close closes the channel and the connection.
func (p *FormPublisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}
	return errors.Join(errCh, errConn)
}
