package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"

	"service-driver/internal/domain"
	"service-driver/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

const (
	// defaultSendTimeout caps how long a request waits for the broker ack.
	defaultSendTimeout = time.Second
	// maxInFlight bounds sends still running after their callers gave up.
	maxInFlight = 64
)

// ErrBacklogFull is returned when too many sends are still waiting on the broker.
var ErrBacklogFull = errors.New("kafka publisher backlog full")

// Publisher sends driver change events to a Kafka topic.
// A nil *Publisher is valid and drops every event.
type Publisher struct {
	producer    sarama.SyncProducer
	topic       string
	failures    prometheus.Counter
	logger      logx.Logger
	sendTimeout time.Duration
	inflight    chan struct{}
	wg          sync.WaitGroup
}

func newPublisher(producer sarama.SyncProducer, topic string, failures prometheus.Counter, logger logx.Logger) *Publisher {
	return &Publisher{
		producer:    producer,
		topic:       topic,
		failures:    failures,
		logger:      logger,
		sendTimeout: defaultSendTimeout,
		inflight:    make(chan struct{}, maxInFlight),
	}
}

// NewPublisher creates a Publisher. It returns nil, nil when brokers or topic are not configured.
func NewPublisher(brokers []string, topic string, failures prometheus.Counter, logger logx.Logger) (*Publisher, error) {
	// без брокеров и топика публикация выключена
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	producer, err := newSyncProducer(brokers, producerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	logger.Info("kafka publisher started",
		logx.String("topic", topic),
		logx.Any("brokers", brokers),
	)

	return newPublisher(producer, topic, failures, logger), nil
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "service-driver"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

type sendResult struct {
	partition int32
	offset    int64
	err       error
}

// Publish sends e keyed by driver id so events of one driver keep their order.
// It waits for the broker at most until ctx ends or sendTimeout passes; a send
// that outlives its caller keeps running in the background and still counts
// failures.
func (p *Publisher) Publish(ctx context.Context, e domain.DriverEvent) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := p.message(e)
	if err != nil {
		p.fail()
		return err
	}

	select {
	case p.inflight <- struct{}{}:
	default:
		p.fail()
		return fmt.Errorf("kafka send %s: %w", e.Type, ErrBacklogFull)
	}

	done := make(chan sendResult, 1)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.inflight }()

		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			p.fail()
		}
		done <- sendResult{partition: partition, offset: offset, err: err}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.sendTimeout)
	defer cancel()

	select {
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("kafka send %s: %w", e.Type, r.err)
		}
		p.logger.Debug("driver event published",
			logx.String("type", string(e.Type)),
			logx.DriverID(e.DriverID),
			logx.Int("partition", int(r.partition)),
			logx.Int64("offset", r.offset),
		)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("kafka send %s: %w", e.Type, ctx.Err())
	}
}

func (p *Publisher) message(e domain.DriverEvent) (*sarama.ProducerMessage, error) {
	body, err := json.Marshal(FromDomain(e))
	if err != nil {
		return nil, fmt.Errorf("marshal driver event: %w", err)
	}
	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.DriverID, 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(e.Type)},
		},
	}, nil
}

func (p *Publisher) fail() {
	if p.failures != nil {
		p.failures.Inc()
	}
}

// Close waits for background sends and closes the underlying producer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.wg.Wait()
	return p.producer.Close()
}
