package events

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const (
	BalanceChanged      = "balance.changed"
	BetSettled          = "bet.settled"
	MatchStatusChanged  = "match.status"
	SettlementGenerated = "settlement.generated"
	CasinoRoundSettled  = "casino.round.settled"
	TransferStatus      = "transfer.status"
)

type publisher interface {
	publish(eventType string, body []byte) error
}

var (
	mu  sync.Mutex
	pub publisher = logPublisher{}
)

// Init wires the AMQP publisher when EVENT_AMQP_URL is set; otherwise
// events just go to the log. Either way Emit never fails the caller.
func Init() {
	url := os.Getenv("EVENT_AMQP_URL")
	if url == "" {
		log.Println("🟡 EVENT_AMQP_URL not set, events will be logged only")
		return
	}

	exchange := os.Getenv("EVENT_AMQP_EXCHANGE")
	if exchange == "" {
		exchange = "toto.events"
	}

	p, err := newAMQPPublisher(url, exchange)
	if err != nil {
		log.Printf("⚠️ failed to connect event broker, falling back to log: %v", err)
		return
	}

	mu.Lock()
	pub = p
	mu.Unlock()
	log.Println("✅ Connected to event broker")
}

// Emit publishes fire-and-forget. It runs asynchronously, never blocks the
// caller and never reports failure upward; a lost event is only logged.
func Emit(eventType string, payload any) {
	go func() {
		body, err := json.Marshal(map[string]any{
			"type":       eventType,
			"emitted_at": time.Now().UTC().Format(time.RFC3339),
			"data":       payload,
		})
		if err != nil {
			log.Printf("⚠️ event %s marshal failed: %v", eventType, err)
			return
		}

		mu.Lock()
		p := pub
		mu.Unlock()

		if err := p.publish(eventType, body); err != nil {
			log.Printf("⚠️ event %s publish failed: %v", eventType, err)
		}
	}()
}

type logPublisher struct{}

func (logPublisher) publish(eventType string, body []byte) error {
	log.Printf("📣 event %s %s", eventType, body)
	return nil
}

type amqpPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func newAMQPPublisher(url, exchange string) (*amqpPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &amqpPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) publish(eventType string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
}
