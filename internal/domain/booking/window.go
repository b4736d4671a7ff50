package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWindow = errors.New("window end must be after start")

// Window is a half-open time range [start, end). Two windows that merely
// touch at a boundary do not overlap.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// ToTstzrange renders the window as a PostgreSQL tstzrange literal.
// RFC3339Nano keeps full precision so the literal bounds match the
// stored timestamps exactly.
func (w Window) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339Nano), w.end.Format(time.RFC3339Nano))
}
