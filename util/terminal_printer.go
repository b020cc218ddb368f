package util

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TerminalPrinter redraws a fixed set of lines at a fixed frequency
type TerminalPrinter struct {
	lines     []*Line
	frequency time.Duration
	doneCh    chan struct{}
	stopOnce  sync.Once
	stoppedCh chan struct{}
	started   bool

	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(out io.Writer, frequency time.Duration) *TerminalPrinter {
	w := uilive.New()
	if out != nil {
		w.Out = out
	}
	return &TerminalPrinter{
		lines:     make([]*Line, 0),
		frequency: frequency,
		doneCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),

		writer:  w,
		writers: make([]io.Writer, 0),
	}
}

// NewLine adds a line below the existing ones. Call it before Start.
func (p *TerminalPrinter) NewLine() *Line {
	l := NewOutputLine()
	p.lines = append(p.lines, l)
	if len(p.lines) == 1 {
		p.writers = append(p.writers, p.writer)
	} else {
		p.writers = append(p.writers, p.writer.Newline())
	}
	return l
}

func (p *TerminalPrinter) Start(ctx context.Context) {
	p.started = true
	go func() {
		defer close(p.stoppedCh)
		for {
			select {
			case <-p.doneCh:
				p.print()
				return
			case <-ctx.Done():
				p.print()
				return
			case <-time.After(p.frequency):
				p.print()
			}
		}
	}()
}

// Stop prints the lines a last time and waits for the printer to exit
func (p *TerminalPrinter) Stop() {
	if !p.started {
		return
	}
	p.stopOnce.Do(func() {
		close(p.doneCh)
	})
	<-p.stoppedCh
}

func (p *TerminalPrinter) print() {
	for i, line := range p.lines {
		fmt.Fprint(p.writers[i], line.Get()+"\n")
	}
	p.writer.Flush()
}

// Line holds the current text of one printed line
type Line struct {
	mu        *sync.Mutex
	printable string
}

func NewOutputLine() *Line {
	return &Line{
		mu:        new(sync.Mutex),
		printable: "",
	}
}

// Set the output string (blocking)
func (l *Line) Set(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printable = s
}

// Try to set the output string (non-blocking)
func (l *Line) TrySet(s string) bool {
	if l.mu.TryLock() {
		defer l.mu.Unlock()
		l.printable = s
		return true
	}
	return false
}

// Get the output string (blocking)
func (l *Line) Get() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.printable
}
