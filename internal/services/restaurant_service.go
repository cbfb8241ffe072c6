package services

import (
	"context"
	"time"

	"golang-restaurant-explorer/internal/metrics"
	"golang-restaurant-explorer/internal/models"

	log "github.com/sirupsen/logrus"
)

// RestaurantProvider is the upstream data source; *restaurantapi.Client implements it
type RestaurantProvider interface {
	ListRestaurants(ctx context.Context) ([]models.RestaurantSummary, error)
	GetRestaurantDetail(ctx context.Context, id string) (*models.RestaurantDetail, error)
}

type RestaurantService struct {
	provider RestaurantProvider
	metrics  *metrics.Metrics
}

func NewRestaurantService(provider RestaurantProvider, m *metrics.Metrics) *RestaurantService {
	return &RestaurantService{
		provider: provider,
		metrics:  m,
	}
}

// FetchList retrieves the full catalog in a single call. No retry.
func (s *RestaurantService) FetchList(ctx context.Context) ([]models.RestaurantSummary, error) {
	start := time.Now()
	restaurants, err := s.provider.ListRestaurants(ctx)
	s.metrics.ObserveUpstream("list", start, err)

	if err != nil {
		log.WithError(err).Error("[restaurants] Failed to fetch restaurant list")
		return nil, err
	}

	log.WithFields(log.Fields{
		"count":   len(restaurants),
		"elapsed": time.Since(start).String(),
	}).Debug("[restaurants] Fetched restaurant list")
	return restaurants, nil
}

// FetchDetail always goes to the API; details are never cached
func (s *RestaurantService) FetchDetail(ctx context.Context, id string) (*models.RestaurantDetail, error) {
	start := time.Now()
	detail, err := s.provider.GetRestaurantDetail(ctx, id)
	s.metrics.ObserveUpstream("detail", start, err)

	if err != nil {
		log.WithError(err).WithField("restaurant_id", id).Error("[restaurants] Error fetching restaurant detail")
		return nil, err
	}

	return detail, nil
}
