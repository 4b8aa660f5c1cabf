package components

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFoodUpdateExpiry(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"fresh", 0, true},
		{"midlife", 7 * time.Second, true},
		{"exactly lifetime", 15 * time.Second, true},
		{"one ms past lifetime", 15001 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFood(8, t0, 15*time.Second)
			got := f.Update(t0.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("Update(+%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
			if f.Destroyed == tt.want {
				t.Errorf("Destroyed = %v after Update returned %v", f.Destroyed, got)
			}
			if !tt.want && f.Fate != FoodExpired {
				t.Errorf("Fate = %v, want expired", f.Fate)
			}
		})
	}
}

func TestFoodReduceSizeMonotonic(t *testing.T) {
	f := NewFood(8, t0, 15*time.Second)
	prev := f.Size
	bites := 0
	for f.ReduceSize(0.1) {
		if f.Size > prev {
			t.Fatalf("size increased from %v to %v", prev, f.Size)
		}
		prev = f.Size
		bites++
	}

	// 8 / 0.1 with float32 rounding lands within a bite of 80
	if bites < 78 || bites > 81 {
		t.Errorf("bites before depletion = %d, want ~80", bites)
	}
	if !f.Destroyed {
		t.Error("expected food destroyed after depletion")
	}
	if f.Fate != FoodDepleted {
		t.Errorf("Fate = %v, want depleted", f.Fate)
	}

	size := f.Size
	if f.ReduceSize(0.1) {
		t.Error("ReduceSize on destroyed food returned true")
	}
	if f.Size != size {
		t.Errorf("ReduceSize mutated destroyed food: %v -> %v", size, f.Size)
	}
}

func TestFoodDestroyIdempotent(t *testing.T) {
	f := NewFood(8, t0, 15*time.Second)
	f.Destroy()
	f.Destroy()
	if !f.Destroyed || f.Fate != FoodRemoved {
		t.Errorf("after double destroy: Destroyed=%v Fate=%v", f.Destroyed, f.Fate)
	}
	if f.Update(t0.Add(20 * time.Second)) {
		t.Error("Update on destroyed food returned true")
	}
	if f.Fate != FoodRemoved {
		t.Errorf("Update changed fate of destroyed food to %v", f.Fate)
	}
	if f.Size != 8 {
		t.Errorf("Size = %v, want 8", f.Size)
	}
}

func TestForagerClearTarget(t *testing.T) {
	var f Forager
	f.HasTarget = true
	f.State = StateConsuming
	f.ClearTarget()
	if f.HasTarget || f.State != StateSearching {
		t.Errorf("after ClearTarget: HasTarget=%v State=%v", f.HasTarget, f.State)
	}
}

func TestForageStateString(t *testing.T) {
	tests := []struct {
		s    ForageState
		want string
	}{
		{StateSearching, "Searching"},
		{StateTracking, "Tracking"},
		{StateConsuming, "Consuming"},
		{ForageState(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("ForageState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
