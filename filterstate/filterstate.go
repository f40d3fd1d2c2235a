// Package filterstate keeps a storefront browsing session's filter
// selection, price slider, and outbound catalog requests mutually
// consistent. It owns the slider percent <-> absolute price conversion,
// debounces free-text search, and stamps every committed request with a
// sequence number so only the latest response is ever applied.
package filterstate

import (
	"log"
	"math"
	"sync"
	"time"
)

// Sort keys mirrored from the catalog listing endpoint.
const (
	SortDefault   = "default"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
	SortOldest    = "oldest"
	SortNewest    = "newest"
)

// Bound selects which end of the price range a typed value applies to.
type Bound int

const (
	BoundMin Bound = iota
	BoundMax
)

const (
	// PageSize is the fixed storefront page size.
	PageSize = 9

	// DefaultDebounce is the quiet period after the last keystroke
	// before a search commit fires.
	DefaultDebounce = 500 * time.Millisecond

	// fallbackMaxPrice is the sentinel ceiling used when the server
	// reports unusable price bounds.
	fallbackMaxPrice = 1000000

	// the two slider handles keep at least this much separation, on the
	// percent scale and on the currency scale
	minSeparation = 1
)

// Request is a canonical, fully clamped filter request. Transient UI state
// (mid-drag slider positions, uncommitted search text) never appears here.
type Request struct {
	Seq      uint64
	Page     int
	Limit    int
	Search   string
	Category string
	Brand    string
	Sort     string
	MinPrice int
	MaxPrice int
}

// Session is the filter state for one catalog browsing session. All
// methods are safe for concurrent use; the debounce timer fires on its own
// goroutine.
type Session struct {
	mu       sync.Mutex
	onCommit func(Request)

	debounceInterval time.Duration
	debounce         *time.Timer

	catalogMin int
	catalogMax int

	minPercent int
	maxPercent int
	curMin     int
	curMax     int

	category    string
	brand       string
	sort        string
	search      string
	searchInput string
	searchGen   uint64
	page        int

	seq     uint64
	loading bool
	errMsg  string
}

// NewSession creates a session with default bounds. onCommit receives every
// canonical request the session emits; it is called without the session
// lock held.
func NewSession(onCommit func(Request)) *Session {
	return &Session{
		onCommit:         onCommit,
		debounceInterval: DefaultDebounce,
		catalogMax:       fallbackMaxPrice,
		curMax:           fallbackMaxPrice,
		maxPercent:       100,
		sort:             SortDefault,
		page:             1,
	}
}

// SetDebounceInterval overrides the search quiet period.
func (s *Session) SetDebounceInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.debounceInterval = d
	}
}

// SetPriceBoundsFromServer seeds the catalog-wide price extremes, fetched
// once per session. Unusable bounds fall back to (0, fallbackMaxPrice)
// instead of propagating a crash; the substitution is logged.
func (s *Session) SetPriceBoundsFromServer(min, max float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min > max {
		log.Printf("⚠️ invalid catalog price bounds (%v, %v), falling back to (0, %d)", min, max, fallbackMaxPrice)
		min, max = 0, fallbackMaxPrice
	}

	s.catalogMin = int(math.Round(min))
	s.catalogMax = int(math.Round(max))
	s.curMin = s.catalogMin
	s.curMax = s.catalogMax
	s.minPercent = 0
	s.maxPercent = 100
}

// PercentToPrice converts a 0-100 slider percentage to an absolute price by
// linear interpolation, rounded to the nearest currency unit.
func (s *Session) PercentToPrice(p int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.percentToPriceLocked(p)
}

func (s *Session) percentToPriceLocked(p int) int {
	if s.catalogMax <= s.catalogMin {
		// degenerate range guard
		return s.catalogMin
	}
	span := s.catalogMax - s.catalogMin
	return s.catalogMin + int(math.Round(float64(span)*float64(p)/100))
}

func (s *Session) priceToPercentLocked(price int) int {
	if s.catalogMax <= s.catalogMin {
		return 0
	}
	span := s.catalogMax - s.catalogMin
	return int(math.Round(float64(price-s.catalogMin) * 100 / float64(span)))
}

// DragMin moves the lower slider handle. Only local slider state changes;
// the outbound request updates on ReleasePrice. The handle is clamped so it
// can never cross or touch the upper one.
func (s *Session) DragMin(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if percent < 0 {
		percent = 0
	}
	if percent > s.maxPercent-minSeparation {
		percent = s.maxPercent - minSeparation
	}
	s.minPercent = percent
}

// DragMax moves the upper slider handle, mirroring DragMin.
func (s *Session) DragMax(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if percent > 100 {
		percent = 100
	}
	if percent < s.minPercent+minSeparation {
		percent = s.minPercent + minSeparation
	}
	s.maxPercent = percent
}

// ReleasePrice commits the current slider position as the session's price
// range. Called on mouse-up/touch-end, not per drag tick, so dragging never
// fires a request per pixel.
func (s *Session) ReleasePrice() {
	s.mu.Lock()

	if s.catalogMax <= s.catalogMin {
		// degenerate catalog range: the single bound is the only valid
		// price state, so no separation push applies
		s.curMin = s.catalogMin
		s.curMax = s.catalogMax
		s.page = 1
		req, cb := s.commitLocked()
		s.mu.Unlock()
		if cb != nil {
			cb(req)
		}
		return
	}

	newMin := s.percentToPriceLocked(s.minPercent)
	newMax := s.percentToPriceLocked(s.maxPercent)
	if newMin < s.catalogMin {
		newMin = s.catalogMin
	}
	if newMax > s.catalogMax {
		newMax = s.catalogMax
	}
	if newMax <= newMin {
		// rounding collapsed the range; push the bounds apart again
		newMax = newMin + minSeparation
		if newMax > s.catalogMax {
			newMax = s.catalogMax
			newMin = newMax - minSeparation
		}
	}
	s.curMin = newMin
	s.curMax = newMax
	s.page = 1

	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// SetPriceByNumberInput applies a typed min/max price. The value is clamped
// to the catalog bounds and kept at least one currency unit away from the
// other bound; price and slider percent update together, and the request
// commits immediately since typed input is already a discrete action.
func (s *Session) SetPriceByNumberInput(value int, which Bound) {
	s.mu.Lock()

	if s.catalogMax <= s.catalogMin {
		log.Printf("⚠️ price input ignored: degenerate catalog range (%d, %d)", s.catalogMin, s.catalogMax)
		s.mu.Unlock()
		return
	}

	switch which {
	case BoundMin:
		if value < s.catalogMin {
			value = s.catalogMin
		}
		if value > s.curMax-minSeparation {
			value = s.curMax - minSeparation
		}
		s.curMin = value
		percent := s.priceToPercentLocked(value)
		if percent < 0 {
			percent = 0
		}
		if percent > s.maxPercent-minSeparation {
			percent = s.maxPercent - minSeparation
		}
		s.minPercent = percent
	case BoundMax:
		if value > s.catalogMax {
			value = s.catalogMax
		}
		if value < s.curMin+minSeparation {
			value = s.curMin + minSeparation
		}
		s.curMax = value
		percent := s.priceToPercentLocked(value)
		if percent > 100 {
			percent = 100
		}
		if percent < s.minPercent+minSeparation {
			percent = s.minPercent + minSeparation
		}
		s.maxPercent = percent
	}
	s.page = 1

	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// SetSearchText stores the raw input for display and schedules a canonical
// search commit after the quiet period. Any keystroke inside the window
// restarts the timer, so at most one commit fires per idle period.
func (s *Session) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchInput = text
	s.searchGen++
	gen := s.searchGen
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.debounceInterval, func() {
		s.commitSearch(gen, text)
	})
}

func (s *Session) commitSearch(gen uint64, text string) {
	s.mu.Lock()

	// a timer that fired before Stop landed still carries the old
	// generation; comparing text is not enough since the user may have
	// retyped the same string
	if gen != s.searchGen {
		s.mu.Unlock()
		return
	}
	s.search = text
	s.page = 1

	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// SetCategory selects a single category; empty means unfiltered.
func (s *Session) SetCategory(name string) {
	s.mu.Lock()
	s.category = name
	s.page = 1
	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// SetBrand selects a single brand; empty means unfiltered.
func (s *Session) SetBrand(name string) {
	s.mu.Lock()
	s.brand = name
	s.page = 1
	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// SetSort selects the sort order. Unknown keys fall back to the default.
func (s *Session) SetSort(sort string) {
	switch sort {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortOldest, SortNewest:
	default:
		sort = SortDefault
	}

	s.mu.Lock()
	s.sort = sort
	s.page = 1
	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// SetPage changes only the page; every other filter stays put.
func (s *Session) SetPage(page int) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.page = page
	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// ClearAll resets category, brand, and the price range to the catalog
// bounds in one atomic update and returns to page 1. Committed search text
// is untouched. Calling it twice yields the same state as once.
func (s *Session) ClearAll() {
	s.mu.Lock()
	s.category = ""
	s.brand = ""
	s.curMin = s.catalogMin
	s.curMax = s.catalogMax
	s.minPercent = 0
	s.maxPercent = 100
	s.page = 1
	req, cb := s.commitLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(req)
	}
}

// commitLocked stamps and returns the canonical request plus the callback
// to invoke once the lock is released.
func (s *Session) commitLocked() (Request, func(Request)) {
	s.seq++
	s.loading = true
	s.errMsg = ""
	return Request{
		Seq:      s.seq,
		Page:     s.page,
		Limit:    PageSize,
		Search:   s.search,
		Category: s.category,
		Brand:    s.brand,
		Sort:     s.sort,
		MinPrice: s.curMin,
		MaxPrice: s.curMax,
	}, s.onCommit
}

// ApplyResponse reports whether the response for the given sequence number
// is still authoritative. Responses for anything but the latest issued
// request are discarded, so a slow early reply can never overwrite a newer
// one. The loading/error flags update only when the response applies.
func (s *Session) ApplyResponse(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.errMsg = ""
	}
	return true
}

// Snapshot returns the current canonical state without issuing a request.
func (s *Session) Snapshot() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Request{
		Seq:      s.seq,
		Page:     s.page,
		Limit:    PageSize,
		Search:   s.search,
		Category: s.category,
		Brand:    s.brand,
		Sort:     s.sort,
		MinPrice: s.curMin,
		MaxPrice: s.curMax,
	}
}

// SliderPercents returns the current handle positions.
func (s *Session) SliderPercents() (min, max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minPercent, s.maxPercent
}

// Bounds returns the immutable catalog price extremes for this session.
func (s *Session) Bounds() (min, max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogMin, s.catalogMax
}

// Loading reports whether a committed request is still awaiting its
// authoritative response.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SearchInput returns the raw text as typed, which runs ahead of the
// committed search while the debounce window is open.
func (s *Session) SearchInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchInput
}

// Err returns the visible error state, empty when the last applied
// response succeeded.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
