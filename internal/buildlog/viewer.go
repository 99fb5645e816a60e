package buildlog

import (
	"sync"
	"time"
)

// DefaultSearchDelay is the quiet period before a search term is applied.
const DefaultSearchDelay = 300 * time.Millisecond

// Debouncer runs the most recently triggered function once triggers have
// been quiet for the configured delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any pending call and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels a pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Viewer holds the interactive filter state over a fixed set of lines.
// Machine changes apply immediately; search changes are debounced.
type Viewer struct {
	mu       sync.Mutex
	delay    time.Duration
	lines    []Line
	filter   Filter
	visible  []Line
	debounce *Debouncer
	onChange func(Filter, []Line)
}

// NewViewer starts with every line visible. A non-positive searchDelay means
// DefaultSearchDelay. onChange, if set, is called after every re-filter with
// the new state; it may run on a timer goroutine.
func NewViewer(lines []Line, searchDelay time.Duration, onChange func(Filter, []Line)) *Viewer {
	if searchDelay <= 0 {
		searchDelay = DefaultSearchDelay
	}
	v := &Viewer{
		lines:    lines,
		delay:    searchDelay,
		filter:   NewFilter(AllMachines, ""),
		debounce: NewDebouncer(searchDelay),
		onChange: onChange,
	}
	v.visible = Visible(lines, v.filter)
	return v
}

func (v *Viewer) SetMachine(machine string) {
	v.mu.Lock()
	v.filter = NewFilter(machine, v.filter.Search)
	v.mu.Unlock()
	v.apply()
}

func (v *Viewer) Search(term string) {
	v.debounce.Trigger(func() {
		v.mu.Lock()
		v.filter.Search = term
		v.mu.Unlock()
		v.apply()
	})
}

func (v *Viewer) apply() {
	v.mu.Lock()
	f := v.filter
	v.visible = Visible(v.lines, f)
	visible := append([]Line(nil), v.visible...)
	v.mu.Unlock()
	if v.onChange != nil {
		v.onChange(f, visible)
	}
}

// SearchDelay is the quiet period applied to search changes.
func (v *Viewer) SearchDelay() time.Duration {
	return v.delay
}

func (v *Viewer) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

func (v *Viewer) Visible() []Line {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Line(nil), v.visible...)
}

// Export serializes the currently visible lines.
func (v *Viewer) Export() (Export, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return exportLines(v.visible, v.filter)
}

// Close drops any pending search.
func (v *Viewer) Close() {
	v.debounce.Stop()
}
