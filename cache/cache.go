package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient создает клиент Redis и проверяет соединение.
// Возвращает nil, если адрес не задан (Redis отключен).
func NewClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis недоступен (%v), продолжаем без него", err)
		client.Close()
		return nil
	}
	return client
}

// Limiter ограничивает частоту запросов по фиксированному окну.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLimiter создает ограничитель. При client == nil все запросы разрешены.
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow проверяет, не превышен ли лимит для ключа (обычно IP клиента).
// При ошибках Redis запрос пропускается, чтобы не блокировать вход.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.client == nil || l.limit <= 0 {
		return true
	}
	redisKey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("Ошибка Redis при проверке лимита: %v", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Printf("Ошибка установки TTL для ключа лимита: %v", err)
		}
	}
	return count <= int64(l.limit)
}

// DismissalStore хранит отметки о скрытых пользователем оповещениях о пропавших питомцах.
type DismissalStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDismissalStore создает хранилище скрытых оповещений.
// При client == nil операции становятся no-op, и список скрытых всегда пуст.
func NewDismissalStore(client *redis.Client) *DismissalStore {
	return &DismissalStore{client: client, ttl: 7 * 24 * time.Hour}
}

func dismissalKey(userID int64) string {
	return fmt.Sprintf("alert:dismissed:%d", userID)
}

// Dismiss скрывает оповещение для пользователя.
func (d *DismissalStore) Dismiss(ctx context.Context, userID, alertID int64) error {
	if d.client == nil {
		return nil
	}
	key := dismissalKey(userID)
	if err := d.client.SAdd(ctx, key, alertID).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения скрытого оповещения: %w", err)
	}
	if err := d.client.Expire(ctx, key, d.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка установки TTL для скрытых оповещений: %w", err)
	}
	return nil
}

// Dismissed возвращает идентификаторы оповещений, скрытых пользователем.
func (d *DismissalStore) Dismissed(ctx context.Context, userID int64) (map[int64]bool, error) {
	dismissed := make(map[int64]bool)
	if d.client == nil {
		return dismissed, nil
	}
	ids, err := d.client.SMembers(ctx, dismissalKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения скрытых оповещений: %w", err)
	}
	for _, raw := range ids {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err == nil {
			dismissed[id] = true
		}
	}
	return dismissed, nil
}
