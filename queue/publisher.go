package queue

import (
	"context"
	"encoding/json"
	"time"

	"base97/config"
	"base97/pkg/log"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher 通知事件发布口。业务侧发布失败只记日志, 不影响主流程。
type Publisher interface {
	Publish(ctx context.Context, kind string, payload any) error
}

type AmqpPublisher struct {
	URL string
}

func NewPublisher(conf *config.Config) Publisher {
	return &AmqpPublisher{URL: conf.RabbitMQ.URL}
}

var _ Publisher = (*AmqpPublisher)(nil)

// Publish 投递到 notify.email 队列, 消息持久化
func (p *AmqpPublisher) Publish(ctx context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		log.L.Error("notify publish: marshal payload failed", zap.String("kind", kind), zap.Error(err))
		return err
	}
	envelope, err := json.Marshal(Envelope{Kind: kind, Payload: body})
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.L.Error("notify publish: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.L.Error("notify publish: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// 队列声明幂等, durable 保证重启不丢
	if _, err := ch.QueueDeclare(EmailQueue, true, false, false, false, nil); err != nil {
		log.L.Error("notify publish: queue declare failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         envelope,
	}
	if err := ch.PublishWithContext(ctx, "", EmailQueue, false, false, pub); err != nil {
		log.L.Error("notify publish: publish failed", zap.String("kind", kind), zap.Error(err))
		return err
	}
	return nil
}
