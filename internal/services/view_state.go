package services

import (
	"golang-restaurant-explorer/internal/models"
)

// ViewState is the state container of one restaurant view.
// It is not safe for concurrent use; the owner serializes access.
type ViewState struct {
	restaurants []models.RestaurantSummary
	loaded      bool

	filters models.FilterState
	cursor  int

	initialPageSize int
	pageStep        int

	detail    *models.RestaurantDetail
	detailGen uint64
}

func NewViewState(initialPageSize, pageStep int) *ViewState {
	if initialPageSize < 0 {
		initialPageSize = DefaultInitialPageSize
	}
	if pageStep <= 0 {
		pageStep = DefaultPageStep
	}
	return &ViewState{
		initialPageSize: initialPageSize,
		pageStep:        pageStep,
	}
}

// SetRestaurants installs the full set and reveals the first page of it
func (v *ViewState) SetRestaurants(all []models.RestaurantSummary) {
	v.restaurants = all
	v.loaded = true
	v.cursor = min(v.initialPageSize, len(all))
}

func (v *ViewState) Loaded() bool {
	return v.loaded
}

func (v *ViewState) Restaurants() []models.RestaurantSummary {
	return v.restaurants
}

func (v *ViewState) Total() int {
	return len(v.restaurants)
}

func (v *ViewState) Filters() models.FilterState {
	return v.filters
}

func (v *ViewState) Cursor() int {
	return v.cursor
}

func (v *ViewState) PageStep() int {
	return v.pageStep
}

func (v *ViewState) SetOpenNow(open bool) {
	v.filters.OpenNow = open
}

func (v *ViewState) ToggleOpenNow() {
	v.filters.OpenNow = !v.filters.OpenNow
}

func (v *ViewState) SetPriceFilter(tier models.PriceTier) {
	v.filters.Price = tier
}

func (v *ViewState) SetCategoryFilter(city string) {
	v.filters.City = city
}

func (v *ViewState) SetFilters(f models.FilterState) {
	v.filters = f
}

// AdvanceCursor reveals the next page step of the full set. It works whether or not
// filters are active; the cursor only shows once filters are cleared.
func (v *ViewState) AdvanceCursor() int {
	v.cursor = NextCursor(v.cursor, len(v.restaurants), v.pageStep)
	return v.cursor
}

// ClearFilters resets all three filters at once. The cursor is kept.
func (v *ViewState) ClearFilters() {
	v.filters = models.FilterState{}
}

// Visible is the list to render: the filtered full set when any filter is active,
// otherwise the first cursor entries.
func (v *ViewState) Visible() []models.RestaurantSummary {
	if v.filters.Active() {
		return FilterRestaurants(v.restaurants, v.filters)
	}
	return Paginate(v.restaurants, v.cursor)
}

// Filtering reports whether Visible is in filter mode
func (v *ViewState) Filtering() bool {
	return v.filters.Active()
}

// HasMore reports whether load-more would reveal anything
func (v *ViewState) HasMore() bool {
	return v.cursor < len(v.restaurants)
}

// BeginDetail starts a detail request and returns its generation
func (v *ViewState) BeginDetail() uint64 {
	v.detailGen++
	return v.detailGen
}

// SetDetail stores a detail response unless a newer request has been issued since.
// It reports whether the detail was applied.
func (v *ViewState) SetDetail(gen uint64, d *models.RestaurantDetail) bool {
	if gen != v.detailGen {
		return false
	}
	v.detail = d
	return true
}

// FailDetail hides the overlay after a failed request, unless a newer request has been issued since
func (v *ViewState) FailDetail(gen uint64) bool {
	if gen != v.detailGen {
		return false
	}
	v.detail = nil
	return true
}

// CloseDetail hides the overlay; responses still in flight are discarded
func (v *ViewState) CloseDetail() {
	v.detail = nil
	v.detailGen++
}

func (v *ViewState) Detail() *models.RestaurantDetail {
	return v.detail
}

func (v *ViewState) DetailGeneration() uint64 {
	return v.detailGen
}

// Snapshot captures the transient UI state, without any restaurant data
func (v *ViewState) Snapshot() models.ViewSnapshot {
	return models.ViewSnapshot{
		Filters: v.filters,
		Cursor:  v.cursor,
		Mounted: v.loaded,
	}
}

// Restore applies a snapshot taken earlier. The cursor is clamped to the current set.
func (v *ViewState) Restore(s models.ViewSnapshot) {
	v.SetFilters(s.Filters)
	if s.Mounted && v.loaded {
		v.cursor = max(0, min(s.Cursor, len(v.restaurants)))
	}
}
