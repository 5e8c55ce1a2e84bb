package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"event-planner-api/config"
	"event-planner-api/events"

	paotaconfig "github.com/surendratiwari3/paota/config"
	"github.com/surendratiwari3/paota/schema"
	"github.com/surendratiwari3/paota/workerpool"
)

type ConsumerService struct {
	userWorkerPool  workerpool.Pool
	eventWorkerPool workerpool.Pool
	rmqConfig       config.RabbitMQConf
}

// InitializeConsumer initializes Paota consumers for both queues
func InitializeConsumer(rmqConfig config.RabbitMQConf) (*ConsumerService, error) {
	if err := rmqConfig.ValidateRabbitMQConfig(); err != nil {
		return nil, fmt.Errorf("invalid RabbitMQ configuration: %w", err)
	}

	consumer := &ConsumerService{
		rmqConfig: rmqConfig,
	}

	userWorkerPool, err := consumer.initWorkerPool(
		rmqConfig.UserCreatedQueue,
		rmqConfig.UserCreatedRoutingKey,
		"user_created_consumer",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize USER_CREATED consumer: %w", err)
	}
	consumer.userWorkerPool = userWorkerPool

	eventWorkerPool, err := consumer.initWorkerPool(
		rmqConfig.EventCreatedQueue,
		rmqConfig.EventCreatedRoutingKey,
		"event_created_consumer",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize EVENT_CREATED consumer: %w", err)
	}
	consumer.eventWorkerPool = eventWorkerPool

	log.Println("✅ Paota consumers initialized successfully")
	return consumer, nil
}

// initWorkerPool creates a worker pool for a specific queue
func (c *ConsumerService) initWorkerPool(queueName, routingKey, consumerTag string) (workerpool.Pool, error) {
	paotaConfig := paotaconfig.Config{
		Broker:        "amqp",
		TaskQueueName: queueName,
		AMQP: &paotaconfig.AMQPConfig{
			Url:                c.rmqConfig.GetRabbitMQURL(),
			Exchange:           c.rmqConfig.Exchange,
			ExchangeType:       c.rmqConfig.ExchangeType,
			BindingKey:         routingKey,
			PrefetchCount:      c.rmqConfig.PrefetchCount,
			ConnectionPoolSize: c.rmqConfig.PoolSize,
			DelayedQueue:       "",
			TimeoutQueue:       "",
			FailedQueue:        c.rmqConfig.DLX,
		},
	}

	workerPool, err := workerpool.NewWorkerPoolWithConfig(
		context.Background(),
		uint(c.rmqConfig.PrefetchCount),
		consumerTag,
		paotaConfig,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool for %s: %w", queueName, err)
	}

	if workerPool == nil {
		return nil, fmt.Errorf("worker pool creation returned nil for %s", queueName)
	}

	return workerPool, nil
}

// Start starts consuming messages from both queues
func (c *ConsumerService) Start() error {
	if err := c.registerTaskHandlers(); err != nil {
		return fmt.Errorf("failed to register task handlers: %w", err)
	}

	log.Printf("🎧 Starting USER_CREATED consumer for queue: %s", c.rmqConfig.UserCreatedQueue)
	log.Printf("🎧 Starting EVENT_CREATED consumer for queue: %s", c.rmqConfig.EventCreatedQueue)

	// USER_CREATED consumes in a goroutine; EVENT_CREATED blocks the
	// caller until a shutdown signal arrives.
	go func() {
		if err := c.userWorkerPool.Start(); err != nil {
			log.Printf("❌ USER_CREATED consumer error: %v", err)
		}
	}()

	if err := c.eventWorkerPool.Start(); err != nil {
		return fmt.Errorf("failed to start EVENT_CREATED consumer: %w", err)
	}

	return nil
}

// registerTaskHandlers registers handlers for both message types
func (c *ConsumerService) registerTaskHandlers() error {
	userTasks := map[string]interface{}{
		"USER_CREATED": c.handleUserCreated,
	}
	if err := c.userWorkerPool.RegisterTasks(userTasks); err != nil {
		return fmt.Errorf("failed to register USER_CREATED handler: %w", err)
	}

	eventTasks := map[string]interface{}{
		"EVENT_CREATED": c.handleEventCreated,
	}
	if err := c.eventWorkerPool.RegisterTasks(eventTasks); err != nil {
		return fmt.Errorf("failed to register EVENT_CREATED handler: %w", err)
	}

	return nil
}

// handleUserCreated processes USER_CREATED messages
// Context parameter is required by Paota's task handler signature
func (c *ConsumerService) handleUserCreated(ctx context.Context, signature *schema.Signature) error {
	body, err := messageBody(signature)
	if err != nil {
		return err
	}

	var msg events.UserEvent
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		log.Printf("❌ Failed to unmarshal USER_CREATED message: %v", err)
		return err // Message will be retried or sent to DLQ
	}

	// Simulate sending welcome email
	log.Printf("📧 [USER_CREATED] Welcome email sent to %s (UserID: %s)",
		msg.Data.Email,
		msg.Data.UserID,
	)

	return nil // Message will be acknowledged
}

// handleEventCreated processes EVENT_CREATED messages
// Context parameter is required by Paota's task handler signature
func (c *ConsumerService) handleEventCreated(ctx context.Context, signature *schema.Signature) error {
	body, err := messageBody(signature)
	if err != nil {
		return err
	}

	var msg events.EventCreated
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		log.Printf("❌ Failed to unmarshal EVENT_CREATED message: %v", err)
		return err // Message will be retried or sent to DLQ
	}

	// Audit trail for new events
	log.Printf("📝 [EVENT_CREATED] Event %s (%q) created by user %s",
		msg.Data.EventID,
		msg.Data.Title,
		msg.Data.UserID,
	)

	return nil // Message will be acknowledged
}

func messageBody(signature *schema.Signature) (string, error) {
	if len(signature.Args) == 0 {
		return "", fmt.Errorf("no arguments in signature")
	}

	body, ok := signature.Args[0].Value.(string)
	if !ok {
		return "", fmt.Errorf("invalid argument type, expected string")
	}
	return body, nil
}

// Close closes all consumer connections
func (c *ConsumerService) Close() error {
	log.Println("🔌 Stopping consumer worker pools...")
	c.userWorkerPool.Stop()
	c.eventWorkerPool.Stop()
	log.Println("✅ Consumer worker pools stopped")
	return nil
}
