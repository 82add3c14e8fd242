package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WelcomeSender delivers the welcome message for a captured lead.
type WelcomeSender interface {
	SendLeadWelcome(to, name string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  WelcomeSender
}

func NewWorker(ch *amqp.Channel, sender WelcomeSender) *Worker {
	return &Worker{Channel: ch, Sender: sender}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de boas-vindas encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de consumo fechado")
			}
			w.handle(d)
		}
	}
}

// Acknowledger is satisfied by amqp.Delivery.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (w *Worker) handle(d amqp.Delivery) {
	w.process(d.Body, &d)
}

func (w *Worker) process(body []byte, ack Acknowledger) {
	var event LeadCapturedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("❌ [WORKER] JSON Inválido: %s", err)
		ack.Nack(false, false)
		return
	}

	if event.Email == "" {
		log.Printf("⚠️ [WORKER] Lead %d sem email, descartando", event.LeadID)
		ack.Ack(false)
		return
	}

	if err := w.Sender.SendLeadWelcome(event.Email, event.Name); err != nil {
		log.Printf("❌ [WORKER] Falha ao enviar boas-vindas para lead %d: %s", event.LeadID, err)
		ack.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] Boas-vindas enviadas para lead %d", event.LeadID)
	ack.Ack(false)
}
