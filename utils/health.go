package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor periodically probes Mongo and Redis and keeps the latest
// snapshot in memory for the health endpoint.
type HealthMonitor struct {
	mongoClient  *mongo.Client
	redisClients []*redis.Client

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongoClient *mongo.Client, redisClients ...*redis.Client) *HealthMonitor {
	return &HealthMonitor{mongoClient: mongoClient, redisClients: redisClients}
}

// Status returns the latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Start performs an immediate check, then rechecks on the given interval
// until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.check(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

func (m *HealthMonitor) check(ctx context.Context) {
	var redisHealth []bool
	for _, client := range m.redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}

	mongoHealthy := m.mongoClient.Ping(ctx, nil) == nil

	m.mu.Lock()
	m.current = HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	m.mu.Unlock()
}
