package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status on a terminal while work runs.
type Spinner struct {
	w     io.Writer
	label string
	ctx   context.Context

	quit     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	writeMu  sync.Mutex
}

func newSpinner(ctx context.Context, label string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, label)
}

// newSpinnerTo returns a spinner drawing on w. It halts on its own once ctx
// is done.
func newSpinnerTo(ctx context.Context, w io.Writer, label string) *Spinner {
	return &Spinner{
		w:       w,
		label:   label,
		ctx:     ctx,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start draws frames in the background until Stop is called or the context
// ends.
func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for n := 0; ; n++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.erase()
			return
		case <-tick.C:
			s.draw(spinnerFrames[n%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.label))
}

func (s *Spinner) erase() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", len(s.label)+4)+"\r")
}

// Stop halts the animation and blanks the line. Extra calls do nothing.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		<-s.stopped
		s.erase()
	})
}

// StopWithSuccess stops the spinner and prints msg as a success line.
func (s *Spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess("%s", msg)
}
