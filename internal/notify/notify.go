package notify

import (
	"io"
	"os"
)

// Notifier receives the timer's lifecycle cues. Implementations must not
// block: cues fire from the tick path.
type Notifier interface {
	SessionStarted()
	WorkCompleted()
	BreakCompleted()
}

// New builds the terminal-bell notifier, or a silent one when sound is off.
func New(sound bool) Notifier {
	if !sound {
		return silent{}
	}
	return NewBell(os.Stderr)
}

// Bell signals cues with BEL bytes. Writing to stderr keeps the alt
// screen untouched.
type Bell struct {
	w io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) SessionStarted() {
	b.ring(1)
}

// Work completion rings twice, break completion once.
func (b *Bell) WorkCompleted() {
	b.ring(2)
}

func (b *Bell) BreakCompleted() {
	b.ring(1)
}

func (b *Bell) ring(n int) {
	if b == nil || b.w == nil {
		return
	}
	for i := 0; i < n; i++ {
		_, _ = b.w.Write([]byte("\a"))
	}
}

type silent struct{}

func (silent) SessionStarted() {}
func (silent) WorkCompleted()  {}
func (silent) BreakCompleted() {}
