package components

// String returns the display name for a ForageState.
func (s ForageState) String() string {
	names := ForageStateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// ForageStateNames returns the display names for all forage states.
// The order matches the ForageState constants.
func ForageStateNames() []string {
	return []string{"Searching", "Tracking", "Consuming"}
}

// ForageStateCount returns the number of forage states.
func ForageStateCount() int {
	return len(ForageStateNames())
}

// String returns the display name for a FoodFate.
func (f FoodFate) String() string {
	names := FoodFateNames()
	if int(f) < len(names) {
		return names[f]
	}
	return "Unknown"
}

// FoodFateNames returns the display names for all food fates.
func FoodFateNames() []string {
	return []string{"active", "expired", "depleted", "removed"}
}
