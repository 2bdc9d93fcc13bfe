// Package rabbitmq содержит вспомогательные функции для работы с брокером сообщений:
// подключение с повторными попытками, настройку очередей, публикацию и потребление сообщений.
package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Connect устанавливает соединение с RabbitMQ с повторными попытками.
func Connect(amqpURI string, maxRetries int, retryDelay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"

	var conn *amqp.Connection
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		conn, err = amqp.Dial(amqpURI)
		if err == nil {
			return conn, nil
		}
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет очереди из переданной конфигурации.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(
			q.QueueName,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			if closeErr := ch.Close(); closeErr != nil {
				return nil, fmt.Errorf("%s: %w (close: %v)", op, err, closeErr)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ch, nil
}

// ConsumerMessage запускает потребление сообщений из очереди, передавая тело
// каждого сообщения в обработчик. Сообщение подтверждается только после
// успешной обработки, иначе возвращается в очередь.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"

	msgs, err := ch.Consume(
		queueName,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := handler(msg.Body); err != nil {
					_ = msg.Nack(false, true)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()
	return nil
}
