package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/internal/services"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RestaurantFetcher is satisfied by *services.RestaurantService
type RestaurantFetcher interface {
	FetchList(ctx context.Context) ([]models.RestaurantSummary, error)
	FetchDetail(ctx context.Context, id string) (*models.RestaurantDetail, error)
}

type restaurantsLoadedMsg struct {
	restaurants []models.RestaurantSummary
	err         error
}

// detailLoadedMsg carries the generation the fetch was issued with
type detailLoadedMsg struct {
	gen    uint64
	detail *models.RestaurantDetail
	err    error
}

// BrowseOptions configures the terminal view
type BrowseOptions struct {
	InitialPageSize int
	PageStep        int
	Cities          []string
	ImageBaseURL    string
	PictureSize     string
	Timeout         time.Duration
}

// BrowseModel is the terminal rendition of the restaurant view
type BrowseModel struct {
	fetcher RestaurantFetcher
	opts    BrowseOptions
	state   *services.ViewState

	selected      int
	loading       bool
	detailLoading bool
	err           error

	width   int
	height  int
	spinner spinner.Model
	help    help.Model
	keys    browseKeyMap
}

func NewBrowseModel(fetcher RestaurantFetcher, opts BrowseOptions) BrowseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = starStyle

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return BrowseModel{
		fetcher: fetcher,
		opts:    opts,
		state:   services.NewViewState(opts.InitialPageSize, opts.PageStep),
		loading: true,
		spinner: s,
		help:    help.New(),
		keys:    browseKeys,
	}
}

// Init mounts the view: the list is fetched once
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchList())
}

func (m BrowseModel) fetchList() tea.Cmd {
	fetcher, timeout := m.fetcher, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		restaurants, err := fetcher.FetchList(ctx)
		return restaurantsLoadedMsg{restaurants: restaurants, err: err}
	}
}

func (m BrowseModel) fetchDetail(gen uint64, id string) tea.Cmd {
	fetcher, timeout := m.fetcher, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		detail, err := fetcher.FetchDetail(ctx, id)
		return detailLoadedMsg{gen: gen, detail: detail, err: err}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if !m.loading && !m.detailLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case restaurantsLoadedMsg:
		m.loading = false
		restaurants := msg.restaurants
		if msg.err != nil {
			m.err = msg.err
			restaurants = []models.RestaurantSummary{}
		}
		m.state.SetRestaurants(restaurants)

	case detailLoadedMsg:
		// older requests are dropped
		if msg.gen != m.state.DetailGeneration() {
			return m, nil
		}
		m.detailLoading = false
		if msg.err != nil {
			m.err = msg.err
			m.state.FailDetail(msg.gen)
			return m, nil
		}
		m.err = nil
		m.state.SetDetail(msg.gen, msg.detail)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Close):
		m.state.CloseDetail()
		m.detailLoading = false
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.state.Visible())-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.OpenNow):
		m.state.ToggleOpenNow()
	case key.Matches(msg, m.keys.Price):
		m.state.SetPriceFilter(m.state.Filters().Price.Next())
	case key.Matches(msg, m.keys.Category):
		m.state.SetCategoryFilter(m.nextCity())
	case key.Matches(msg, m.keys.More):
		m.state.AdvanceCursor()
	case key.Matches(msg, m.keys.Clear):
		m.state.ClearFilters()
	case key.Matches(msg, m.keys.Detail):
		visible := m.state.Visible()
		if m.selected >= len(visible) {
			return m, nil
		}
		gen := m.state.BeginDetail()
		m.detailLoading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchDetail(gen, visible[m.selected].ID))
	}

	m.clampSelection()
	return m, nil
}

// nextCity cycles "" → first option → ... → last option → ""
func (m BrowseModel) nextCity() string {
	options := services.CityOptions(m.opts.Cities, m.state.Restaurants())
	current := m.state.Filters().City
	if current == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, c := range options {
		if c == current && i+1 < len(options) {
			return options[i+1]
		}
	}
	return ""
}

func (m *BrowseModel) clampSelection() {
	n := len(m.state.Visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Restaurants"))
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf(" %s Loading restaurants...\n", m.spinner.View()))
		return b.String()
	}

	if d := m.state.Detail(); d != nil {
		b.WriteString(m.renderDetail(d))
	} else {
		b.WriteString(m.renderList())
	}

	if m.detailLoading {
		b.WriteString(fmt.Sprintf("\n %s Loading details...", m.spinner.View()))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(" Error: "+m.err.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BrowseModel) renderFilters() string {
	f := m.state.Filters()

	open := "[ ] Open Now"
	if f.OpenNow {
		open = activeFilterStyle.Render("[x] Open Now")
	}
	price := f.Price.Label()
	if f.Price != models.PriceAny {
		price = activeFilterStyle.Render(price)
	}
	category := "All Categories"
	if f.City != "" {
		category = activeFilterStyle.Render(f.City)
	}

	return filterBarStyle.Render(strings.Join([]string{open, price, category}, "  |  "))
}

func (m BrowseModel) renderList() string {
	visible := m.state.Visible()
	if len(visible) == 0 {
		return mutedStyle.Render("  No restaurants found.")
	}

	rows := make([]string, 0, len(visible)+1)
	for i, r := range visible {
		status := closedStyle.Render("Closed")
		if r.OpenNow {
			status = openStyle.Render("Open")
		}
		line := fmt.Sprintf("%-28s %-12s %s  Price Range: %g  %s",
			r.Name, r.City, starStyle.Render(fmt.Sprintf("%-5s", models.Stars(r.Rating))), r.Rating, status)

		if i == m.selected {
			rows = append(rows, selectedItemStyle.Render(line))
		} else {
			rows = append(rows, itemStyle.Render(line))
		}
	}

	if m.state.HasMore() {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d of %d shown, press m to load more", m.state.Cursor(), m.state.Total())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m BrowseModel) renderDetail(d *models.RestaurantDetail) string {
	field := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	width := 72
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		overlayTitleStyle.Render(d.Name),
		field("Rating", starStyle.Render(models.Stars(d.Rating))+fmt.Sprintf(" %g", d.Rating)),
		field("Address", fmt.Sprintf("%s, %s", d.Address, d.City)),
		field("Categories", d.CategoryNames()),
		field("Foods", d.FoodNames()),
		field("Drinks", d.DrinkNames()),
		field("Picture", mutedStyle.Render(models.PictureURL(m.opts.ImageBaseURL, m.opts.PictureSize, d.PictureID))),
		"",
		d.Description,
	)
	return overlayStyle.Width(width).Render(body)
}
