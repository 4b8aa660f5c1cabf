package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FeedingFrenzy(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Bites: 5})
	}

	if got := bd.Check(WindowStats{WindowEndTick: 3000, Bites: 40}); !hasBookmark(got, BookmarkFeedingFrenzy) {
		t.Error("expected feeding_frenzy bookmark")
	}
	if got := bd.Check(WindowStats{WindowEndTick: 3600, Bites: 12}); hasBookmark(got, BookmarkFeedingFrenzy) {
		t.Error("unexpected feeding_frenzy for a modest window")
	}
}

func TestBookmarkDetector_FeedingFrenzyNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if got := bd.Check(WindowStats{Bites: 100}); hasBookmark(got, BookmarkFeedingFrenzy) {
		t.Error("feeding_frenzy fired without history")
	}
}

func TestBookmarkDetector_FoodWasted(t *testing.T) {
	tests := []struct {
		name     string
		expired  int
		depleted int
		want     bool
	}{
		{"mostly expired", 5, 1, true},
		{"mostly eaten", 3, 4, false},
		{"too few to matter", 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(5)
			got := bd.Check(WindowStats{FoodExpired: tt.expired, FoodDepleted: tt.depleted})
			if hasBookmark(got, BookmarkFoodWasted) != tt.want {
				t.Errorf("food_wasted = %v, want %v", !tt.want, tt.want)
			}
		})
	}
}

func TestBookmarkDetector_FlockOrderFiresOncePerCrossing(t *testing.T) {
	bd := NewBookmarkDetector(5)
	pol := []float64{0.2, 0.85, 0.9, 0.5, 0.25, 0.2, 0.95}
	want := []BookmarkType{"", BookmarkFlockPolarised, "", "", BookmarkFlockScattered, "", BookmarkFlockPolarised}

	for i, p := range pol {
		got := bd.Check(WindowStats{WindowEndTick: int32(i), Tadpoles: 500, Polarisation: p})
		for _, typ := range []BookmarkType{BookmarkFlockPolarised, BookmarkFlockScattered} {
			if hasBookmark(got, typ) != (want[i] == typ) {
				t.Errorf("window %d (polarisation %.2f): %s present = %v", i, p, typ, !(want[i] == typ))
			}
		}
	}
}

func TestBookmarkDetector_GrowthSpurt(t *testing.T) {
	bd := NewBookmarkDetector(5)
	bd.Check(WindowStats{Fish: 20, FishSizeMean: 5})

	if got := bd.Check(WindowStats{Fish: 20, FishSizeMean: 5.2}); hasBookmark(got, BookmarkFishGrowthSpurt) {
		t.Error("4% growth should not be a spurt")
	}
	if got := bd.Check(WindowStats{Fish: 20, FishSizeMean: 6}); !hasBookmark(got, BookmarkFishGrowthSpurt) {
		t.Error("expected fish_growth_spurt bookmark")
	}
}
