// Package notify 后台消费 notify.email 队列, 渲染并发送事务邮件。
// 断线重连 + 退避, 单条消息失败重入队一次后丢弃, 不影响服务主流程。
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"base97/config"
	"base97/pkg/log"
	"base97/pkg/mail"
	"base97/queue"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Consumer struct {
	url        string
	mailer     *mail.Mailer
	store      mail.StoreInfo
	adminEmail string
}

func NewConsumer(conf *config.Config, mailer *mail.Mailer) *Consumer {
	return &Consumer{
		url:    conf.RabbitMQ.URL,
		mailer: mailer,
		store: mail.StoreInfo{
			Name:           conf.Store.Name,
			ClientURL:      conf.Store.ClientURL,
			SupportEmail:   conf.Store.SupportEmail,
			AffiliateEmail: conf.Store.AffiliateEmail,
		},
		adminEmail: conf.Store.AdminEmail,
	}
}

// Start 常驻消费循环, 通常跑在独立 goroutine 里
func (c *Consumer) Start() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.L.Warn("notify consumer: dial broker failed",
				zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(conn); err != nil {
			log.L.Warn("notify consumer: consume loop ended", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.L.Warn("notify consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(queue.EmailQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(queue.EmailQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(d.Body); err != nil {
			// 重投一次, 再失败就丢弃
			if d.Redelivered {
				log.L.Error("notify consumer: drop message after retry", zap.Error(err))
				_ = d.Nack(false, false)
			} else {
				log.L.Warn("notify consumer: handle failed, requeue once", zap.Error(err))
				_ = d.Nack(false, true)
			}
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func (c *Consumer) handle(body []byte) error {
	var env queue.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Kind {
	case queue.KindUserRegistered:
		var ev queue.UserRegisteredEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return err
		}
		subject, html := mail.Welcome(c.store, ev)
		return c.send(ev.Email, subject, html)

	case queue.KindReviewCreated:
		var ev queue.ReviewCreatedEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return err
		}
		subject, html := mail.ReviewThanks(c.store, ev)
		return c.send(ev.Email, subject, html)

	case queue.KindAffiliateApproved:
		var ev queue.AffiliateApprovedEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return err
		}
		subject, html := mail.AffiliateApproved(c.store, ev)
		if err := c.send(ev.Email, subject, html); err != nil {
			return err
		}
		subject, html = mail.AffiliateApprovedAdmin(c.store, ev)
		return c.send(c.adminEmail, subject, html)

	case queue.KindAffiliateRejected:
		var ev queue.AffiliateRejectedEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return err
		}
		subject, html := mail.AffiliateRejected(c.store, ev)
		return c.send(ev.Email, subject, html)

	case queue.KindOrderCreated:
		var ev queue.OrderCreatedEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return err
		}
		subject, html := mail.OrderConfirmation(c.store, ev)
		if err := c.send(ev.CustomerEmail, subject, html); err != nil {
			return err
		}
		subject, html = mail.OrderCreatedAdmin(c.store, ev)
		return c.send(c.adminEmail, subject, html)

	case queue.KindOrderStatusChanged:
		var ev queue.OrderStatusChangedEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return err
		}
		switch ev.Status {
		case "Paid":
			subject, html := mail.PaymentConfirmed(c.store, ev)
			return c.send(ev.CustomerEmail, subject, html)
		case "Dispatched":
			subject, html := mail.OrderDispatched(c.store, ev)
			return c.send(ev.CustomerEmail, subject, html)
		default:
			// Delivered/Cancelled 无邮件
			return nil
		}

	default:
		log.L.Warn("notify consumer: unknown event kind", zap.String("kind", env.Kind))
		return nil
	}
}

func (c *Consumer) send(to, subject, html string) error {
	if err := c.mailer.Send(to, subject, html); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	log.L.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
