package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/xShinnRyuu/amazon-neptune-tools/config"
)

// Initialize new RabbitMQ connection
func NewRabbitMQConn(cfg *config.Config) (*amqp.Connection, error) {
	return amqp.Dial(cfg.RMQ.URL)
}
