package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/pastaria/backend/config"
	"github.com/pastaria/backend/pkg/helpers"
	"github.com/pastaria/backend/pkg/mailer"
	"github.com/pastaria/backend/pkg/mailer/templates"
)

// The worker drains the email queue: render the template for each
// job, hand it to mailgun, ack. Jobs that cannot be decoded are
// dropped; a failed send is requeued once.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("rabbitmq dial failed")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("rabbitmq channel failed")
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		logger.WithError(err).Fatal("queue declare failed")
	}
	if err := ch.Qos(5, 0, false); err != nil {
		logger.WithError(err).Fatal("qos failed")
	}

	deliveries, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume failed")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker started")
	for {
		select {
		case <-quit:
			logger.Info("email worker stopping")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}
			handle(cfg, logger, mg, d)
		}
	}
}

func handle(cfg *config.Config, logger *logrus.Logger, mg *mailer.Mailgun, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.WithError(err).Error("undecodable email job dropped")
		_ = d.Nack(false, false)
		return
	}

	subject, html, err := render(job)
	if err != nil {
		logger.WithError(err).WithField("template", job.Template).Error("render failed, job dropped")
		_ = d.Nack(false, false)
		return
	}

	if !cfg.MailSendEnabled {
		logger.WithField("to", job.To).Info("mail sending disabled, job acked")
		_ = d.Ack(false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := mg.Send(ctx, job.To, subject, "", html); err != nil {
		logger.WithError(err).WithField("to", job.To).Error("send failed")
		// Requeue only on first failure.
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	logger.WithField("to", job.To).Info("email sent")
	_ = d.Ack(false)
}

func render(job mailer.EmailJob) (subject, html string, err error) {
	switch job.Template {
	case mailer.TemplateOrderConfirmation:
		// Data arrived as generic JSON; round-trip it into the typed
		// payload the template expects.
		b, err := json.Marshal(job.Data)
		if err != nil {
			return "", "", err
		}
		var data mailer.OrderConfirmationData
		if err := json.Unmarshal(b, &data); err != nil {
			return "", "", err
		}
		return templates.RenderOrderConfirmation(data)
	default:
		return "", "", errUnknownTemplate(job.Template)
	}
}

type errUnknownTemplate string

func (e errUnknownTemplate) Error() string { return "unknown email template: " + string(e) }
