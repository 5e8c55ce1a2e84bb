package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"event-planner-api/config"
	"event-planner-api/events"

	paotaconfig "github.com/surendratiwari3/paota/config"
	"github.com/surendratiwari3/paota/schema"
	"github.com/surendratiwari3/paota/workerpool"
)

type ProducerService struct {
	userPool  workerpool.Pool
	eventPool workerpool.Pool
	rmqConfig config.RabbitMQConf
	mu        sync.RWMutex
}

var (
	producerInstance *ProducerService
	producerOnce     sync.Once
)

// InitializeProducer initializes separate producer pools for each message type
func InitializeProducer(rmqConfig config.RabbitMQConf) (*ProducerService, error) {
	var initErr error

	producerOnce.Do(func() {
		if err := rmqConfig.ValidateRabbitMQConfig(); err != nil {
			initErr = fmt.Errorf("invalid RabbitMQ configuration: %w", err)
			return
		}

		producer := &ProducerService{
			rmqConfig: rmqConfig,
		}

		userPool, err := producer.initProducerPool(
			rmqConfig.UserCreatedQueue,
			rmqConfig.UserCreatedRoutingKey,
			"user_created_producer",
		)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize USER_CREATED producer: %w", err)
			return
		}
		producer.userPool = userPool

		eventPool, err := producer.initProducerPool(
			rmqConfig.EventCreatedQueue,
			rmqConfig.EventCreatedRoutingKey,
			"event_created_producer",
		)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize EVENT_CREATED producer: %w", err)
			return
		}
		producer.eventPool = eventPool

		producerInstance = producer
		log.Println("✅ Paota producers initialized successfully")
	})

	if initErr != nil {
		return nil, initErr
	}

	return producerInstance, nil
}

// initProducerPool creates a producer pool for a specific queue
func (p *ProducerService) initProducerPool(queueName, routingKey, tag string) (workerpool.Pool, error) {
	paotaConfig := paotaconfig.Config{
		Broker:        "amqp",
		TaskQueueName: queueName,
		AMQP: &paotaconfig.AMQPConfig{
			Url:                p.rmqConfig.GetRabbitMQURL(),
			Exchange:           p.rmqConfig.Exchange,
			ExchangeType:       p.rmqConfig.ExchangeType,
			BindingKey:         routingKey,
			PrefetchCount:      p.rmqConfig.PrefetchCount,
			ConnectionPoolSize: p.rmqConfig.PoolSize,
			DelayedQueue:       "",
			TimeoutQueue:       "",
			FailedQueue:        p.rmqConfig.DLX,
		},
	}

	// Single worker: these pools only produce.
	workerPool, err := workerpool.NewWorkerPoolWithConfig(
		context.Background(),
		1,
		tag,
		paotaConfig,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create producer pool for %s: %w", queueName, err)
	}

	if workerPool == nil {
		return nil, fmt.Errorf("producer pool creation returned nil for %s", queueName)
	}

	return workerPool, nil
}

// GetProducer returns the singleton producer instance
func GetProducer() (*ProducerService, error) {
	if producerInstance == nil {
		return nil, fmt.Errorf("producer not initialized, call InitializeProducer first")
	}
	return producerInstance, nil
}

// PublishUserCreated publishes a USER_CREATED message
func (p *ProducerService) PublishUserCreated(event events.UserEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.userPool == nil {
		return fmt.Errorf("USER_CREATED producer pool not initialized")
	}

	return p.publish(p.userPool, event, p.rmqConfig.UserCreatedRoutingKey, "USER_CREATED")
}

// PublishEventCreated publishes an EVENT_CREATED message
func (p *ProducerService) PublishEventCreated(event events.EventCreated) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.eventPool == nil {
		return fmt.Errorf("EVENT_CREATED producer pool not initialized")
	}

	return p.publish(p.eventPool, event, p.rmqConfig.EventCreatedRoutingKey, "EVENT_CREATED")
}

// publish sends a message envelope to RabbitMQ using Paota
func (p *ProducerService) publish(pool workerpool.Pool, payload interface{}, routingKey, taskName string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	signature := &schema.Signature{
		Name:       taskName,
		RoutingKey: routingKey,
		Args: []schema.Arg{
			{
				Type:  "string",
				Value: string(body),
			},
		},
		RetryCount:   3,
		RetryTimeout: 30,
	}

	state, err := pool.SendTaskWithContext(context.Background(), signature)
	if err != nil {
		log.Printf("❌ Failed to send %s message: %v", taskName, err)
		return fmt.Errorf("failed to send %s message: %w", taskName, err)
	}

	if state != nil {
		log.Printf("✅ [%s] Message published successfully (TaskID: %s, Status: %s)",
			taskName, state.Request.UUID, state.Status)
	} else {
		log.Printf("⚠️  [%s] Message published but state is nil", taskName)
	}

	return nil
}

// Close closes all producer connections
func (p *ProducerService) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	log.Println("🔌 Closing producer pools...")

	if p.userPool != nil {
		p.userPool.Stop()
	}

	if p.eventPool != nil {
		p.eventPool.Stop()
	}

	log.Println("✅ Producer pools closed")
	return nil
}
