package page

// DefaultScrollThreshold is the offset in pixels past which the navbar turns opaque.
const DefaultScrollThreshold = 50

const (
	navClassTop      = "nav nav--top"
	navClassScrolled = "nav nav--scrolled"
)

// ScrollTracker decides the navbar style from the vertical scroll offset.
type ScrollTracker struct {
	Threshold int
}

// NewScrollTracker returns a tracker for threshold, or the default when it is not positive.
func NewScrollTracker(threshold int) ScrollTracker {
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	return ScrollTracker{Threshold: threshold}
}

// Scrolled reports whether offset is strictly past the threshold.
func (t ScrollTracker) Scrolled(offset int) bool {
	return offset > t.Threshold
}

// Class returns the navbar class for offset.
func (t ScrollTracker) Class(offset int) string {
	if t.Scrolled(offset) {
		return navClassScrolled
	}
	return navClassTop
}

// Classes returns the top and scrolled classes, in that order.
func (ScrollTracker) Classes() (top, scrolled string) {
	return navClassTop, navClassScrolled
}
