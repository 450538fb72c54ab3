package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	alertQueueKey = "dispatch_alerts"
)

// Типы операционных оповещений
const (
	// TypeEscalationExhausted - все раунды эскалации прошли, никто не принял инцидент
	TypeEscalationExhausted = "escalation_exhausted"
	// TypeEmergencyContact - уведомление экстренного контакта путешественника
	TypeEmergencyContact = "emergency_contact"
)

// Alert - операционное оповещение, доставляемое внешним каналам (SMS/push шлюз, дежурный оператор)
type Alert struct {
	Type       string                   `json:"type"`
	IncidentID uuid.UUID                `json:"incident_id"`
	Kind       models.IncidentKind      `json:"kind,omitempty"`
	Location   *models.Location         `json:"location,omitempty"`
	Contact    *models.EmergencyContact `json:"contact,omitempty"`
	Rounds     int                      `json:"rounds,omitempty"`
	Message    string                   `json:"message,omitempty"`
	Timestamp  time.Time                `json:"timestamp"`
}

// Publisher - интерфейс для публикации оповещений
type Publisher interface {
	Publish(ctx context.Context, a Alert) error
}

// RedisAlertPublisher - реализация Publisher, использующая очередь в Redis
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish помещает оповещение в очередь Redis
func (p *RedisAlertPublisher) Publish(ctx context.Context, a Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	// Используем LPUSH для добавления оповещения в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert to Redis: %w", err)
	}
	return nil
}
