// Package kafka publishes applied flight lists as per-aircraft position
// messages, keyed by ICAO24 so one aircraft always lands on one partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
)

const (
	// DefaultWriteTimeout bounds one batch write.
	DefaultWriteTimeout = 10 * time.Second

	batchTimeout = 50 * time.Millisecond
)

// Config holds the publisher settings.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// MessageWriter is the subset of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PositionMessage is the JSON value of every published message.
type PositionMessage struct {
	ICAO24     string   `json:"icao24"`
	FlightIATA string   `json:"flight_iata,omitempty"`
	Callsign   string   `json:"callsign,omitempty"`
	Status     string   `json:"status,omitempty"`
	Latitude   float64  `json:"lat"`
	Longitude  float64  `json:"lon"`
	Altitude   *int     `json:"alt_m,omitempty"`
	Speed      *int     `json:"speed_kmh,omitempty"`
	Heading    *float64 `json:"heading,omitempty"`
	VertRate   *float64 `json:"vertical_rate,omitempty"`
	Departure  string   `json:"dep_iata,omitempty"`
	Arrival    string   `json:"arr_iata,omitempty"`
	BBox       string   `json:"bbox"`
	Timestamp  int64    `json:"timestamp"`
}

// Publisher forwards flight lists to Kafka from a background loop.
// Offer never blocks: when the loop falls behind, only the latest list is kept.
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	pending *batch
	wake    chan struct{}
}

type batch struct {
	box     domain.BoundingBox
	flights []domain.FlightRecord
}

// NewPublisher creates a Publisher backed by a kafka.Writer.
func NewPublisher(cfg Config, log *logger.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return newPublisher(w, cfg, log)
}

func newPublisher(w MessageWriter, cfg Config, log *logger.Logger) *Publisher {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	return &Publisher{
		writer:  w,
		timeout: cfg.WriteTimeout,
		log:     logger.OrNop(log).WithComponent("kafka").WithContext("topic", cfg.Topic),
		now:     time.Now,
		wake:    make(chan struct{}, 1),
	}
}

// Offer queues a flight list for publishing, replacing any unsent one.
func (p *Publisher) Offer(box domain.BoundingBox, flights []domain.FlightRecord) {
	p.mu.Lock()
	if p.pending != nil {
		p.log.Debug().Int("dropped", len(p.pending.flights)).Msg("replacing unsent flight list")
	}
	p.pending = &batch{box: box, flights: flights}
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run publishes offered lists until ctx is done. Write failures are logged
// and the list is dropped; the next poll produces a fresh one.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.wake:
		}

		p.mu.Lock()
		next := p.pending
		p.pending = nil
		p.mu.Unlock()
		if next == nil {
			continue
		}

		writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err := p.Publish(writeCtx, next.box, next.flights)
		cancel()
		if err != nil && ctx.Err() == nil {
			p.log.Warn().Err(err).Int("flights", len(next.flights)).Msg("failed to publish flight list")
		}
	}
}

// Publish writes one message per positioned aircraft.
func (p *Publisher) Publish(ctx context.Context, box domain.BoundingBox, flights []domain.FlightRecord) error {
	msgs, err := BuildMessages(box, flights, p.now())
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	p.log.Debug().Int("messages", len(msgs)).Msg("flight list published")
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// BuildMessages converts flights to Kafka messages. Records without an
// ICAO24 or a position are skipped.
func BuildMessages(box domain.BoundingBox, flights []domain.FlightRecord, at time.Time) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(flights))
	for i := range flights {
		f := &flights[i]
		if f.ICAO24 == "" || !f.HasPosition() {
			continue
		}

		value, err := json.Marshal(PositionMessage{
			ICAO24:     f.ICAO24,
			FlightIATA: f.FlightIATA,
			Callsign:   f.FlightICAO,
			Status:     f.Status,
			Latitude:   *f.Position.Latitude,
			Longitude:  *f.Position.Longitude,
			Altitude:   f.Position.Altitude,
			Speed:      f.Position.Speed,
			Heading:    f.Position.Heading,
			VertRate:   f.Position.VerticalSpeed,
			Departure:  f.Departure.IATA,
			Arrival:    f.Arrival.IATA,
			BBox:       box.String(),
			Timestamp:  timestamp(f, at),
		})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.ICAO24, err)
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(f.ICAO24),
			Value: value,
			Time:  at,
		})
	}
	return msgs, nil
}

// timestamp prefers the upstream position time over the publish time.
func timestamp(f *domain.FlightRecord, at time.Time) int64 {
	if f.Updated != nil {
		return *f.Updated
	}
	return at.Unix()
}
