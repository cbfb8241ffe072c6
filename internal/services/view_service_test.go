package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/internal/repositories"
	"golang-restaurant-explorer/pkg/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestViewService(provider *MockProvider) (*ViewService, repositories.ViewStateRepository, *recordingPublisher) {
	repo := repositories.NewMemoryViewStateRepository(time.Hour)
	pub := &recordingPublisher{}
	svc := NewViewService(NewRestaurantService(provider, nil), repo, pub, nil, ViewSettings{
		InitialPageSize: 8,
		PageStep:        4,
		Cities:          []string{"Balikpapan", "Malang"},
	})
	return svc, repo, pub
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestViewService_MountsOnce(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(sampleRestaurants(20), nil).Once()
	svc, _, pub := newTestViewService(provider)
	ctx := context.Background()

	vm := svc.View(ctx, "s1")
	assert.True(t, vm.Loaded)
	assert.Len(t, vm.Restaurants, 8)
	assert.Equal(t, 20, vm.Total)
	assert.True(t, vm.HasMore)

	vm = svc.LoadMore(ctx, "s1")
	assert.Equal(t, 12, vm.Cursor)
	assert.Len(t, vm.Restaurants, 12)

	provider.AssertNumberOfCalls(t, "ListRestaurants", 1)
	assert.Equal(t, []string{messaging.EventListLoaded, messaging.EventLoadMore}, pub.types())
	assert.Equal(t, 1, svc.ActiveSessions())
}

func TestViewService_ListFailureMountsEmpty(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(nil, errors.New("dns")).Once()
	svc, _, _ := newTestViewService(provider)
	ctx := context.Background()

	vm := svc.View(ctx, "s1")
	assert.True(t, vm.Loaded)
	assert.Empty(t, vm.Restaurants)
	assert.False(t, vm.HasMore)

	vm, err := svc.UpdateFilters(ctx, "s1", FilterUpdate{OpenNow: boolPtr(true), Price: strPtr("$$$$")})
	require.NoError(t, err)
	assert.Empty(t, vm.Restaurants)

	// no retry on later requests
	svc.View(ctx, "s1")
	provider.AssertNumberOfCalls(t, "ListRestaurants", 1)
}

func TestViewService_FiltersAndClear(t *testing.T) {
	all := sampleRestaurants(20)
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(all, nil)
	svc, repo, _ := newTestViewService(provider)
	ctx := context.Background()

	svc.LoadMore(ctx, "s1")

	vm, err := svc.UpdateFilters(ctx, "s1", FilterUpdate{Category: strPtr("Medan")})
	require.NoError(t, err)
	assert.True(t, vm.Filtering)
	assert.Equal(t, FilterRestaurants(all, models.FilterState{City: "Medan"}), vm.Restaurants)

	vm = svc.ToggleOpenNow(ctx, "s1")
	assert.True(t, vm.Filters.OpenNow)
	assert.Equal(t, "Medan", vm.Filters.City)

	vm = svc.ClearFilters(ctx, "s1")
	assert.False(t, vm.Filtering)
	assert.Equal(t, 12, vm.Cursor)
	assert.Len(t, vm.Restaurants, 12)

	snap, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.FilterState{}, snap.Filters)
	assert.Equal(t, 12, snap.Cursor)
}

func TestViewService_UnknownPrice(t *testing.T) {
	provider := new(MockProvider)
	svc, _, _ := newTestViewService(provider)

	_, err := svc.UpdateFilters(context.Background(), "s1", FilterUpdate{Price: strPtr("$$$$$$")})
	assert.True(t, errors.Is(err, models.ErrUnknownPriceTier))
	provider.AssertNotCalled(t, "ListRestaurants", mock.Anything)
}

func TestViewService_RestoresSnapshotAfterUnmount(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(sampleRestaurants(20), nil)
	svc, _, _ := newTestViewService(provider)
	ctx := context.Background()

	svc.LoadMore(ctx, "s1")
	_, err := svc.UpdateFilters(ctx, "s1", FilterUpdate{Price: strPtr("$$")})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 1, svc.Sweep(time.Minute))
	assert.Equal(t, 0, svc.ActiveSessions())

	vm := svc.View(ctx, "s1")
	assert.Equal(t, models.PriceTwo, vm.Filters.Price)
	assert.Equal(t, 12, vm.Cursor)
	provider.AssertNumberOfCalls(t, "ListRestaurants", 2)
}

func TestViewService_OpenDetail(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(sampleRestaurants(4), nil)
	provider.On("GetRestaurantDetail", mock.Anything, "r2").
		Return(&models.RestaurantDetail{ID: "r2", Name: "Restaurant 2"}, nil)
	provider.On("GetRestaurantDetail", mock.Anything, "gone").
		Return(nil, errors.New("404"))
	svc, _, pub := newTestViewService(provider)
	ctx := context.Background()

	vm, err := svc.OpenDetail(ctx, "s1", "r2")
	require.NoError(t, err)
	require.NotNil(t, vm.Detail)
	assert.Equal(t, "r2", vm.Detail.ID)

	// re-fetched on every click
	_, err = svc.OpenDetail(ctx, "s1", "r2")
	require.NoError(t, err)
	provider.AssertNumberOfCalls(t, "GetRestaurantDetail", 2)

	vm = svc.CloseDetail(ctx, "s1")
	assert.Nil(t, vm.Detail)

	_, err = svc.OpenDetail(ctx, "s1", "gone")
	assert.Error(t, err)
	assert.Nil(t, svc.View(ctx, "s1").Detail)

	assert.Contains(t, pub.types(), messaging.EventDetailViewed)
}

func TestViewService_FailedDetailHidesPreviousOverlay(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(sampleRestaurants(4), nil)
	provider.On("GetRestaurantDetail", mock.Anything, "r2").
		Return(&models.RestaurantDetail{ID: "r2"}, nil)
	provider.On("GetRestaurantDetail", mock.Anything, "r3").
		Return(nil, errors.New("boom"))
	svc, _, _ := newTestViewService(provider)
	ctx := context.Background()

	vm, err := svc.OpenDetail(ctx, "s1", "r2")
	require.NoError(t, err)
	require.NotNil(t, vm.Detail)

	_, err = svc.OpenDetail(ctx, "s1", "r3")
	require.Error(t, err)
	assert.Nil(t, svc.View(ctx, "s1").Detail)
}

func TestViewService_AcquireStampsBeforeWaiting(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(sampleRestaurants(4), nil)
	svc, _, _ := newTestViewService(provider)
	ctx := context.Background()

	start := time.Now()
	svc.now = func() time.Time { return start }
	svc.View(ctx, "s1")

	later := start.Add(time.Hour)
	svc.now = func() time.Time { return later }

	lastSeen := func() time.Time {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return svc.mounts["s1"].lastSeen
	}

	// another request holds the mount
	svc.mu.Lock()
	m := svc.mounts["s1"]
	svc.mu.Unlock()
	m.mu.Lock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.View(ctx, "s1")
	}()

	assert.Eventually(t, func() bool { return lastSeen().Equal(later) }, time.Second, 5*time.Millisecond)

	m.mu.Unlock()
	<-done
	assert.Equal(t, 0, svc.Sweep(time.Minute))
	assert.Equal(t, 1, svc.ActiveSessions())
}

type slowProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *slowProvider) ListRestaurants(ctx context.Context) ([]models.RestaurantSummary, error) {
	return sampleRestaurants(4), nil
}

func (p *slowProvider) GetRestaurantDetail(ctx context.Context, id string) (*models.RestaurantDetail, error) {
	if id == "slow" {
		close(p.started)
		<-p.release
	}
	return &models.RestaurantDetail{ID: id}, nil
}

func TestViewService_StaleDetailDiscarded(t *testing.T) {
	provider := &slowProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewViewService(NewRestaurantService(provider, nil), repositories.NewMemoryViewStateRepository(0), nil, nil,
		ViewSettings{InitialPageSize: 8, PageStep: 4})
	ctx := context.Background()
	svc.View(ctx, "s1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.OpenDetail(ctx, "s1", "slow")
	}()
	<-provider.started

	vm, err := svc.OpenDetail(ctx, "s1", "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", vm.Detail.ID)

	close(provider.release)
	<-done

	assert.Equal(t, "fast", svc.View(ctx, "s1").Detail.ID)
}

func TestViewService_CityOptions(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return([]models.RestaurantSummary{{ID: "a", City: "Medan"}}, nil)
	svc, _, _ := newTestViewService(provider)

	vm := svc.View(context.Background(), "s1")
	assert.Equal(t, []string{"Balikpapan", "Malang", "Medan"}, vm.Cities)
}

func TestSessionSweeper_StartStop(t *testing.T) {
	provider := new(MockProvider)
	provider.On("ListRestaurants", mock.Anything).Return(sampleRestaurants(2), nil)
	svc, _, _ := newTestViewService(provider)
	svc.View(context.Background(), "s1")

	sweeper := NewSessionSweeper(svc, 10*time.Millisecond, time.Nanosecond)
	sweeper.Start()
	defer sweeper.Stop()

	assert.Eventually(t, func() bool { return svc.ActiveSessions() == 0 }, time.Second, 10*time.Millisecond)
}
