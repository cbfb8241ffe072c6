package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang-restaurant-explorer/internal/metrics"
	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/internal/repositories"
	"golang-restaurant-explorer/pkg/messaging"

	log "github.com/sirupsen/logrus"
)

// ViewSettings are the pagination and selector options of every view
type ViewSettings struct {
	InitialPageSize int
	PageStep        int
	Cities          []string
}

// ViewModel is a read-only copy of a view, safe to render after the lock is released
type ViewModel struct {
	SessionID   string                     `json:"session_id"`
	Restaurants []models.RestaurantSummary `json:"restaurants"`
	Filters     models.FilterState         `json:"filters"`
	Cursor      int                        `json:"cursor"`
	Total       int                        `json:"total"`
	HasMore     bool                       `json:"has_more"`
	Filtering   bool                       `json:"filtering"`
	Loaded      bool                       `json:"loaded"`
	Cities      []string                   `json:"cities"`
	Detail      *models.RestaurantDetail   `json:"detail,omitempty"`
}

// FilterUpdate changes only the fields that are set
type FilterUpdate struct {
	OpenNow  *bool   `json:"open_now"`
	Price    *string `json:"price"`
	Category *string `json:"category"`
}

type mount struct {
	mu    sync.Mutex
	state *ViewState

	// guarded by ViewService.mu
	lastSeen time.Time
}

// ViewService owns one ViewState per browser session. The restaurant list of a
// session lives only in process memory; the repository holds filters and cursor.
type ViewService struct {
	restaurants *RestaurantService
	repo        repositories.ViewStateRepository
	publisher   messaging.EventPublisher
	metrics     *metrics.Metrics
	settings    ViewSettings

	mu     sync.Mutex
	mounts map[string]*mount
	now    func() time.Time
}

func NewViewService(
	restaurants *RestaurantService,
	repo repositories.ViewStateRepository,
	publisher messaging.EventPublisher,
	m *metrics.Metrics,
	settings ViewSettings,
) *ViewService {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &ViewService{
		restaurants: restaurants,
		repo:        repo,
		publisher:   publisher,
		metrics:     m,
		settings:    settings,
		mounts:      make(map[string]*mount),
		now:         time.Now,
	}
}

// View returns the session's view, mounting it on first use
func (s *ViewService) View(ctx context.Context, sessionID string) *ViewModel {
	return s.withState(ctx, sessionID, "", nil)
}

func (s *ViewService) UpdateFilters(ctx context.Context, sessionID string, update FilterUpdate) (*ViewModel, error) {
	var tier models.PriceTier
	if update.Price != nil {
		parsed, err := models.ParsePriceTier(*update.Price)
		if err != nil {
			return nil, err
		}
		tier = parsed
	}

	vm := s.withState(ctx, sessionID, messaging.EventFiltersChanged, func(v *ViewState) {
		if update.OpenNow != nil {
			v.SetOpenNow(*update.OpenNow)
		}
		if update.Price != nil {
			v.SetPriceFilter(tier)
		}
		if update.Category != nil {
			v.SetCategoryFilter(*update.Category)
		}
	})
	return vm, nil
}

func (s *ViewService) ToggleOpenNow(ctx context.Context, sessionID string) *ViewModel {
	return s.withState(ctx, sessionID, messaging.EventFiltersChanged, func(v *ViewState) {
		v.ToggleOpenNow()
	})
}

func (s *ViewService) LoadMore(ctx context.Context, sessionID string) *ViewModel {
	return s.withState(ctx, sessionID, messaging.EventLoadMore, func(v *ViewState) {
		v.AdvanceCursor()
	})
}

func (s *ViewService) ClearFilters(ctx context.Context, sessionID string) *ViewModel {
	return s.withState(ctx, sessionID, messaging.EventFiltersCleared, func(v *ViewState) {
		v.ClearFilters()
	})
}

func (s *ViewService) CloseDetail(ctx context.Context, sessionID string) *ViewModel {
	return s.withState(ctx, sessionID, "", func(v *ViewState) {
		v.CloseDetail()
	})
}

// OpenDetail fetches the restaurant and shows it in the session's overlay.
// In-flight requests are not cancelled; a response older than the latest request is dropped.
func (s *ViewService) OpenDetail(ctx context.Context, sessionID, restaurantID string) (*ViewModel, error) {
	m := s.acquire(ctx, sessionID)
	gen := m.state.BeginDetail()
	m.mu.Unlock()

	detail, err := s.restaurants.FetchDetail(ctx, restaurantID)
	if err != nil {
		m.mu.Lock()
		m.state.FailDetail(gen)
		m.mu.Unlock()
		return nil, err
	}

	m.mu.Lock()
	applied := m.state.SetDetail(gen, detail)
	vm := s.buildViewModel(sessionID, m.state)
	m.mu.Unlock()

	if !applied {
		log.WithFields(log.Fields{
			"session_id":    sessionID,
			"restaurant_id": restaurantID,
			"generation":    gen,
		}).Debug("[view] Discarded stale restaurant detail")
	}

	s.metrics.Transition("detail")
	s.publish(ctx, messaging.ViewEvent{
		Type:         messaging.EventDetailViewed,
		SessionID:    sessionID,
		RestaurantID: restaurantID,
		Cursor:       vm.Cursor,
	})
	return vm, nil
}

// Sweep unmounts sessions idle for longer than idle and returns how many were removed
func (s *ViewService) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, m := range s.mounts {
		// a locked mount is in use
		if !m.mu.TryLock() {
			continue
		}
		stale := m.lastSeen.Before(cutoff)
		m.mu.Unlock()
		if stale {
			delete(s.mounts, id)
			removed++
		}
	}
	s.metrics.SetActiveSessions(len(s.mounts))
	return removed
}

func (s *ViewService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mounts)
}

func (s *ViewService) withState(ctx context.Context, sessionID, event string, fn func(v *ViewState)) *ViewModel {
	m := s.acquire(ctx, sessionID)
	if fn != nil {
		fn(m.state)
		s.persist(ctx, sessionID, m.state)
	}
	vm := s.buildViewModel(sessionID, m.state)
	m.mu.Unlock()

	if event != "" {
		s.metrics.Transition(event)
		s.publish(ctx, messaging.ViewEvent{
			Type:      event,
			SessionID: sessionID,
			Cursor:    vm.Cursor,
			Metadata: map[string]interface{}{
				"open_now": vm.Filters.OpenNow,
				"price":    string(vm.Filters.Price),
				"category": vm.Filters.City,
			},
		})
	}
	return vm
}

// acquire returns the session's mount locked, fetching the list on first use
func (s *ViewService) acquire(ctx context.Context, sessionID string) *mount {
	s.mu.Lock()
	m, ok := s.mounts[sessionID]
	if !ok {
		m = &mount{state: NewViewState(s.settings.InitialPageSize, s.settings.PageStep)}
		s.mounts[sessionID] = m
		s.metrics.SetActiveSessions(len(s.mounts))
	}
	m.lastSeen = s.now()
	s.mu.Unlock()

	m.mu.Lock()
	if !m.state.Loaded() {
		s.mountList(ctx, sessionID, m.state)
	}
	return m
}

// A failed fetch mounts an empty list; there is no retry.
func (s *ViewService) mountList(ctx context.Context, sessionID string, state *ViewState) {
	restaurants, err := s.restaurants.FetchList(ctx)
	if err != nil {
		restaurants = []models.RestaurantSummary{}
	}
	state.SetRestaurants(restaurants)

	snapshot, err := s.repo.Get(ctx, sessionID)
	switch {
	case err == nil:
		state.Restore(*snapshot)
	case !errors.Is(err, repositories.ErrSessionNotFound):
		log.WithError(err).WithField("session_id", sessionID).Warn("[view] Failed to restore view state")
	}

	s.persist(ctx, sessionID, state)
	s.publish(ctx, messaging.ViewEvent{
		Type:      messaging.EventListLoaded,
		SessionID: sessionID,
		Cursor:    state.Cursor(),
		Metadata:  map[string]interface{}{"count": state.Total()},
	})
}

func (s *ViewService) persist(ctx context.Context, sessionID string, state *ViewState) {
	snapshot := state.Snapshot()
	snapshot.SessionID = sessionID
	snapshot.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, &snapshot); err != nil {
		log.WithError(err).WithField("session_id", sessionID).Warn("[view] Failed to save view state")
	}
}

func (s *ViewService) publish(ctx context.Context, event messaging.ViewEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event", event.Type).Warn("[view] Failed to publish view event")
	}
}

func (s *ViewService) buildViewModel(sessionID string, state *ViewState) *ViewModel {
	return &ViewModel{
		SessionID:   sessionID,
		Restaurants: state.Visible(),
		Filters:     state.Filters(),
		Cursor:      state.Cursor(),
		Total:       state.Total(),
		HasMore:     state.HasMore(),
		Filtering:   state.Filtering(),
		Loaded:      state.Loaded(),
		Cities:      CityOptions(s.settings.Cities, state.Restaurants()),
		Detail:      state.Detail(),
	}
}
