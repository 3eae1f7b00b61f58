package tui

import (
	"context"

	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/MKhiriev/go-secret-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// leaver is implemented by pages that hold resources while shown.
type leaver interface {
	Leave()
}

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages, guarding protected pages
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx   context.Context
	guard service.SessionGuard

	pages       map[Page]tea.Model
	protected   map[Page]bool
	current     tea.Model
	currentPage Page

	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage. Pages listed in
// protected are only shown while the guard accepts the session.
func NewRootModel(ctx context.Context, guard service.SessionGuard, pages map[Page]tea.Model, protected []Page, startPage Page, buildInfo models.AppBuildInfo) RootModel {
	r := RootModel{
		ctx:       ctx,
		guard:     guard,
		pages:     pages,
		protected: make(map[Page]bool, len(protected)),
		buildInfo: buildInfo,
	}
	for _, p := range protected {
		r.protected[p] = true
	}

	r.currentPage = r.resolve(startPage)
	r.current = pages[r.currentPage]
	return r
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			r.leave()
			return r, tea.Quit
		case "v":
			if r.currentPage == pageEntry {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		page := r.resolve(nav.Page)
		next, exists := r.pages[page]
		if !exists {
			return r, nil
		}

		r.leave()
		r.showBuildInfo = false
		r.current = next
		r.currentPage = page

		if nav.Payload != nil {
			payload := nav.Payload
			return r, tea.Sequence(r.current.Init(), func() tea.Msg { return payload })
		}
		return r, r.current.Init()
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("go-secret-keeper", "", "")
	}
	return r.current.View()
}

// resolve applies the route guard to page.
func (r RootModel) resolve(page Page) Page {
	if r.guard.GuardRoute(r.ctx, r.protected[page]) == service.RouteRedirectToEntry {
		return pageEntry
	}
	return page
}

func (r RootModel) leave() {
	if l, ok := r.current.(leaver); ok {
		l.Leave()
	}
}
