package services

import (
	"context"
	"sync"

	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/pkg/messaging"

	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ListRestaurants(ctx context.Context) ([]models.RestaurantSummary, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.RestaurantSummary)
	return list, args.Error(1)
}

func (m *MockProvider) GetRestaurantDetail(ctx context.Context, id string) (*models.RestaurantDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*models.RestaurantDetail)
	return detail, args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.ViewEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event messaging.ViewEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
