package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFeedingFrenzy   BookmarkType = "feeding_frenzy"
	BookmarkFoodWasted      BookmarkType = "food_wasted"
	BookmarkFlockPolarised  BookmarkType = "flock_polarised"
	BookmarkFlockScattered  BookmarkType = "flock_scattered"
	BookmarkFishGrowthSpurt BookmarkType = "fish_growth_spurt"
)

// Polarisation levels that flip the flock between ordered and scattered.
const (
	polarisedAbove = 0.8
	scatteredBelow = 0.3
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable windows in the pond.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	polarised bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{history: make([]WindowStats, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkFeedingFrenzy(stats))
	add(bd.checkFoodWasted(stats))
	add(bd.checkFlockOrder(stats))
	add(bd.checkGrowthSpurt(stats))

	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}

	return bookmarks
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFeedingFrenzy(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Bites
	}
	avg := float64(total) / float64(len(history))

	// A quiet history needs a real burst, not one stray bite
	if float64(stats.Bites) > 3*avg && stats.Bites >= 20 {
		return &Bookmark{
			Type:        BookmarkFeedingFrenzy,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d bites vs rolling average %.1f", stats.Bites, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkFoodWasted(stats WindowStats) *Bookmark {
	if stats.FoodExpired >= 3 && stats.FoodExpired > stats.FoodEaten() {
		return &Bookmark{
			Type:        BookmarkFoodWasted,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d food expired, %d eaten", stats.FoodExpired, stats.FoodEaten()),
		}
	}
	return nil
}

// checkFlockOrder fires once per crossing.
func (bd *BookmarkDetector) checkFlockOrder(stats WindowStats) *Bookmark {
	if stats.Tadpoles == 0 {
		return nil
	}

	switch {
	case stats.Polarisation >= polarisedAbove && !bd.polarised:
		bd.polarised = true
		return &Bookmark{
			Type:        BookmarkFlockPolarised,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Flock polarisation reached %.2f", stats.Polarisation),
		}
	case stats.Polarisation <= scatteredBelow && bd.polarised:
		bd.polarised = false
		return &Bookmark{
			Type:        BookmarkFlockScattered,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Flock polarisation fell to %.2f", stats.Polarisation),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkGrowthSpurt(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) == 0 || stats.Fish == 0 {
		return nil
	}

	prevIdx := bd.historyIdx - 1
	if prevIdx < 0 {
		prevIdx = len(bd.history) - 1
	}
	prev := bd.history[prevIdx]
	if prev.FishSizeMean <= 0 {
		return nil
	}

	if gain := stats.FishSizeMean/prev.FishSizeMean - 1; gain > 0.10 {
		return &Bookmark{
			Type:        BookmarkFishGrowthSpurt,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Mean fish size grew %.0f%% to %.2f", gain*100, stats.FishSizeMean),
		}
	}
	return nil
}
