package report

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"go.uber.org/zap"
)

// ViewState is the render state of the report view.
type ViewState string

const (
	// StateEmpty renders the empty-category placeholder; no fetch is issued.
	StateEmpty ViewState = "empty"
	// StateLoading renders skeleton rows while a fetch is in flight.
	StateLoading ViewState = "loading"
	StateReady   ViewState = "ready"
	// StateError offers a manual retry; a failed fetch never crashes the view.
	StateError ViewState = "error"
)

// SkeletonRowCount is how many placeholder rows the table shows while a
// fetch is in flight.
const SkeletonRowCount = 5

// ErrStaleFetch reports that a fetch result was discarded because the view
// moved on to different parameters before it completed.
var ErrStaleFetch = errors.New("report: stale fetch result discarded")

// View is the report page's view-model for one category: the active time
// range tab, pagination state, and the derived columns and sums for the
// currently fetched page. All transitions are driven by discrete calls;
// a fetch whose parameters are superseded mid-flight is discarded via a
// generation check.
type View struct {
	mu sync.Mutex

	categoryName string
	source       EventSource
	logger       *zap.Logger
	scope        ColumnScope
	now          func() time.Time

	// hasEvents is a snapshot from the initial page load. It is never
	// re-derived by the view itself; InvalidateHasEvents flips it when
	// category activity is observed externally.
	hasEvents bool

	activeRange event.TimeRange
	pagination  Pagination
	generation  uint64

	state   ViewState
	events  []event.Event
	total   int64
	columns []Column
	sums    map[string]FieldSum
	lastErr error
}

// Snapshot is an immutable render description of the view.
type Snapshot struct {
	Category      string              `json:"category"`
	State         ViewState           `json:"state"`
	ActiveRange   event.TimeRange     `json:"active_range"`
	Pagination    Pagination          `json:"pagination"`
	PageCount     int                 `json:"page_count"`
	EventsCount   int64               `json:"events_count"`
	Columns       []Column            `json:"columns"`
	Events        []event.Event       `json:"events"`
	FieldSums     map[string]FieldSum `json:"field_sums"`
	DisplayedSums map[string]float64  `json:"displayed_sums"`
	SkeletonRows  int                 `json:"skeleton_rows,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// NewView builds a report view for one category. hasEvents comes from the
// initial page load; when false the view short-circuits to the empty state
// and never fetches.
func NewView(categoryName string, hasEvents bool, pagination Pagination, source EventSource, logger *zap.Logger) *View {
	v := &View{
		categoryName: categoryName,
		source:       source,
		logger:       logger,
		scope:        ScopePageUnion,
		now:          time.Now,
		hasEvents:    hasEvents,
		activeRange:  event.RangeToday,
		pagination:   pagination,
		state:        StateReady,
		sums:         map[string]FieldSum{},
	}
	if !hasEvents {
		v.state = StateEmpty
	}
	return v
}

// SetColumnScope switches between page-union and first-event column
// derivation. Takes effect on the next fetch.
func (v *View) SetColumnScope(scope ColumnScope) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scope = scope
}

// SetRange picks the tab the view opens on, without issuing a fetch.
// Call before Load; after the initial load, SwitchRange is the
// transition that refetches.
func (v *View) SetRange(rng event.TimeRange) error {
	if !rng.IsValid() {
		return event.ErrInvalidTimeRange
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeRange = rng
	return nil
}

// Load performs the initial fetch. An empty category skips the fetch
// entirely and renders the placeholder.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if !v.hasEvents {
		v.state = StateEmpty
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()
	return v.refresh(ctx)
}

// SwitchRange changes the active time range tab. Switching re-issues the
// event fetch only; the category list is never refetched from here.
func (v *View) SwitchRange(ctx context.Context, rng event.TimeRange) error {
	if !rng.IsValid() {
		return event.ErrInvalidTimeRange
	}

	v.mu.Lock()
	if !v.hasEvents || v.activeRange == rng {
		v.mu.Unlock()
		return nil
	}
	v.activeRange = rng
	v.mu.Unlock()

	return v.refresh(ctx)
}

// SetPageIndex moves to another page and refetches.
func (v *View) SetPageIndex(ctx context.Context, pageIndex int) error {
	if pageIndex < 0 {
		pageIndex = 0
	}

	v.mu.Lock()
	if !v.hasEvents || v.pagination.PageIndex == pageIndex {
		v.mu.Unlock()
		return nil
	}
	v.pagination.PageIndex = pageIndex
	v.mu.Unlock()

	return v.refresh(ctx)
}

// Retry re-issues the fetch after a failure.
func (v *View) Retry(ctx context.Context) error {
	v.mu.Lock()
	if !v.hasEvents {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()
	return v.refresh(ctx)
}

// InvalidateHasEvents drops the empty-category snapshot. Called when
// category activity is observed (e.g. via the activity channel) so a
// populated category does not stay stuck on the empty state.
func (v *View) InvalidateHasEvents() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.hasEvents {
		v.hasEvents = true
		v.state = StateReady
	}
}

// refresh issues a fetch for the current parameters. Bumping the
// generation first means any still-running fetch for older parameters
// will be discarded when it lands.
func (v *View) refresh(ctx context.Context) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	req := PageRequest{
		Category:  v.categoryName,
		PageIndex: v.pagination.PageIndex,
		PageSize:  v.pagination.PageSize,
		Range:     v.activeRange,
	}
	v.state = StateLoading
	v.mu.Unlock()

	result, err := v.source.FetchPage(ctx, req)
	return v.applyResult(gen, result, err)
}

func (v *View) applyResult(gen uint64, result PageResult, err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		// A newer fetch owns the view now.
		return ErrStaleFetch
	}

	if err != nil {
		v.state = StateError
		v.lastErr = err
		v.logger.Error("Event page fetch failed",
			zap.String("category", v.categoryName),
			zap.Error(err))
		return err
	}

	v.events = result.Events
	v.total = result.Total
	v.pagination = v.pagination.ClampIndex(result.Total)
	v.columns = DeriveColumns(result.Events, v.scope)
	v.sums = ComputeFieldSums(result.Events, v.now())
	v.lastErr = nil
	v.state = StateReady
	return nil
}

// Snapshot renders the current view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		Category:    v.categoryName,
		State:       v.state,
		ActiveRange: v.activeRange,
		Pagination:  v.pagination,
		PageCount:   v.pagination.PageCount(v.total),
		EventsCount: v.total,
		Columns:     v.columns,
		Events:      v.events,
		FieldSums:   v.sums,
	}

	if v.state == StateLoading {
		snap.SkeletonRows = SkeletonRowCount
	}
	if v.lastErr != nil {
		snap.Error = v.lastErr.Error()
	}

	displayed := make(map[string]float64, len(v.sums))
	for name, sum := range v.sums {
		displayed[name] = sum.ForRange(v.activeRange)
	}
	snap.DisplayedSums = displayed

	return snap
}
