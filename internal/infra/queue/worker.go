package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/imobflow/crm-api/internal/infra/http/middleware"
)

// WhatsAppNotifier e MailNotifier são os dois canais de aviso ao corretor.
type WhatsAppNotifier interface {
	SendAssignmentAlert(phone, brokerName string, leadCount int) error
}

type MailNotifier interface {
	SendAssignmentSummary(to, brokerName, mode string, leadNames []string) error
}

// Worker consome a fila de atribuições e avisa o corretor. Desacoplado do
// banco: tudo que precisa vem no payload.
type Worker struct {
	Channel  *amqp.Channel
	WhatsApp WhatsAppNotifier
	Mail     MailNotifier
}

func NewWorker(ch *amqp.Channel, whatsapp WhatsAppNotifier, mailer MailNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		WhatsApp: whatsapp,
		Mail:     mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload AssignmentPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem malformada vai direto para a DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Notificando %s: %d lead(s), modo %s",
				payload.BrokerName, len(payload.LeadIDs), payload.Mode)

			if err := w.notify(payload); err != nil {
				log.Printf("❌ [WORKER] Falha na notificação: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de notificações aguardando na fila '%s'", queueName)
	<-forever
}

// notify tenta os dois canais; sucesso em qualquer um conta como entregue.
func (w *Worker) notify(payload AssignmentPayload) error {
	var whatsErr, mailErr error
	delivered := false

	if w.WhatsApp != nil && payload.BrokerPhone != "" {
		whatsErr = w.WhatsApp.SendAssignmentAlert(payload.BrokerPhone, payload.BrokerName, len(payload.LeadIDs))
		if whatsErr != nil {
			middleware.RecordNotificationError("whatsapp")
		} else {
			delivered = true
		}
	}

	if w.Mail != nil && payload.BrokerEmail != "" {
		mailErr = w.Mail.SendAssignmentSummary(payload.BrokerEmail, payload.BrokerName, payload.Mode, payload.LeadNames)
		if mailErr != nil {
			middleware.RecordNotificationError("email")
		} else {
			delivered = true
		}
	}

	if delivered {
		return nil
	}
	if whatsErr != nil {
		return whatsErr
	}
	if mailErr != nil {
		return mailErr
	}
	// Corretor sem contato cadastrado: nada a fazer, tira da fila.
	log.Printf("⚠️ [WORKER] Corretor %s sem telefone nem email, notificação descartada", payload.BrokerName)
	return nil
}
