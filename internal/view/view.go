// Package view renders the token dashboard. A Dashboard is created per
// page load, fetches once, and then only its active tab changes.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/b0ase/path402/apps/baguette/internal/market"
	"github.com/b0ase/path402/apps/baguette/internal/source"
)

// FetchErrorMessage is shown when the snapshot cannot be loaded.
const FetchErrorMessage = "Failed to fetch dashboard data"

var (
	ErrBadTransition = errors.New("dashboard already loaded")
	ErrUnknownTab    = errors.New("unknown tab")
)

// State is the dashboard lifecycle. Exactly one branch renders per state.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// Tab selects the history panel.
type Tab string

const (
	TabPrice   Tab = "price"
	TabHolders Tab = "holders"
	TabVoting  Tab = "voting"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabPrice, TabHolders, TabVoting}

// Label is the tab button text.
func (t Tab) Label() string {
	switch t {
	case TabPrice:
		return "Price History"
	case TabHolders:
		return "Holders History"
	case TabVoting:
		return "Voting History"
	}
	return string(t)
}

// ParseTab maps a query value to a Tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Dashboard is the per-load view state.
type Dashboard struct {
	state State
	data  *market.DashboardData
	err   string
	tab   Tab
}

// New returns a dashboard in the Loading state on the price tab.
func New() *Dashboard {
	return &Dashboard{state: Loading, tab: TabPrice}
}

// Load performs the single fetch. It is only valid while Loading; a
// failed dashboard is retried by creating a new one.
func (d *Dashboard) Load(ctx context.Context, src source.Source) error {
	if d.state != Loading {
		return ErrBadTransition
	}
	data, err := src.Fetch(ctx)
	if err == nil {
		err = data.Validate()
	}
	if err != nil {
		d.state = Failed
		d.err = FetchErrorMessage
		return err
	}
	d.state = Ready
	d.data = data
	return nil
}

func (d *Dashboard) State() State { return d.state }

// Data is the loaded snapshot, nil unless Ready.
func (d *Dashboard) Data() *market.DashboardData { return d.data }

// Err is the user-facing error message, empty unless Failed.
func (d *Dashboard) Err() string { return d.err }

func (d *Dashboard) Tab() Tab { return d.tab }

// SelectTab changes the active tab. It never touches the data.
func (d *Dashboard) SelectTab(t Tab) error {
	if _, err := ParseTab(string(t)); err != nil {
		return err
	}
	d.tab = t
	return nil
}

// Dominance is the volume split of the loaded snapshot.
func (d *Dashboard) Dominance() market.Dominance {
	if d.data == nil {
		return market.ComputeDominance(0, 0)
	}
	return d.data.Dominance()
}
