package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// eventsChannel - канал Redis Pub/Sub, через который события доходят до всех
// экземпляров сервиса; каждый экземпляр раздает их своим локальным комнатам
const eventsChannel = "dispatch:events"

// Publisher - интерфейс публикации событий в канал уведомлений.
// Движок получает его при создании и никогда не обращается к глобальному состоянию.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher поверх Redis Pub/Sub
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish сериализует событие и публикует его в канал Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish broadcast event to Redis: %w", err)
	}
	return nil
}
