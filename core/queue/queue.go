package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creator-ledger/core/config"
	"creator-ledger/core/constants"
	"creator-ledger/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer is what services depend on; tests substitute a recorder.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error
}

type Client struct {
	client *asynq.Client
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	opts = append([]asynq.Option{asynq.MaxRetry(10), asynq.Timeout(constants.DefaultRequestTimeout)}, opts...)
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, body), opts...)
	if err != nil {
		logger.Error("Queue:Enqueue:Error", "type", taskType, "error", err)
		return err
	}
	logger.Info("Queue:Enqueue:Success", "type", taskType, "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			constants.QueueCritical: 6,
			constants.QueueDefault:  3,
		},
		Logger: logger.Adapter{},
		RetryDelayFunc: func(n int, err error, t *asynq.Task) time.Duration {
			return time.Duration(n*n+1) * time.Second
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Task:Failed", "type", task.Type(), "error", err)
		}),
	})
}

// Decode unmarshals a task payload; malformed payloads are not retried.
func Decode(t *asynq.Task, dst any) error {
	if err := json.Unmarshal(t.Payload(), dst); err != nil {
		return fmt.Errorf("decode %s: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
