// Package queue also contains the background consumer that listens to
// the reservation.events queue and writes structured lines to
// logs/reservation.log, giving the administrator a durable audit trail
// of who booked and cancelled what.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const eventsQueueName = "reservation.events"

// StartConsumer connects to RabbitMQ, declares the reservation.events
// queue (durable), and starts consuming messages.  Each message is
// appended to logs/reservation.log in a single-line format.  The
// function runs a reconnect loop with capped exponential backoff and
// never returns under normal operation; processing errors are logged
// and the offending message rejected so the server keeps operating.
// When no broker URL is configured it returns immediately.
func StartConsumer() {
	url := brokerURL()
	if url == "" {
		log.Println("reservation-consumer: no broker configured, events disabled")
		return
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("reservation-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("reservation-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

// brokerURL reads the broker address from RABBITMQ_URL with AMQP_URL as
// a fallback.  Empty means the event pipeline is disabled.
func brokerURL() string {
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		return url
	}
	return os.Getenv("AMQP_URL")
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("reservation-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(eventsQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(eventsQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("reservation-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "reservation.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	by := "student"
	if ev.Admin {
		by = "admin"
	}
	line := fmt.Sprintf("[%s] reservation %s | id=%d | room=%s | date=%s | %s~%s | student=%q | by=%s\n",
		ev.OccurredAt, ev.Action, ev.ReservationID, ev.Room, ev.Date, ev.Start, ev.End, ev.Student, by)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
