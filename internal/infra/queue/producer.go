package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AssignmentPayload carrega tudo que o worker de notificação precisa, para
// não ter que voltar ao banco: contato do corretor e nomes dos leads.
type AssignmentPayload struct {
	Mode        string   `json:"mode"` // LINK, UNLINK, TRANSFER, AUTO
	BrokerID    string   `json:"broker_id"`
	BrokerName  string   `json:"broker_name"`
	BrokerEmail string   `json:"broker_email,omitempty"`
	BrokerPhone string   `json:"broker_phone,omitempty"`
	LeadIDs     []string `json:"lead_ids"`
	LeadNames   []string `json:"lead_names,omitempty"`
	RequestedBy string   `json:"requested_by,omitempty"`
	Origin      string   `json:"origin"` // BULK_ASSIGN, LEAD_CREATED
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishAssignment(ctx context.Context, payload AssignmentPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
