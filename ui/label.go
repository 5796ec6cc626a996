package ui

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Sink receives UI text.
type Sink interface {
	SetText(text string)
}

// Label keeps the most recent text and how long it has been shown.
type Label struct {
	mu      sync.Mutex
	text    string
	age     float64
	updates int
}

func NewLabel(text string) *Label {
	return &Label{text: text}
}

func (l *Label) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
	l.age = 0
	l.updates++
}

func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// Age is the time in seconds since the last SetText.
func (l *Label) Age() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.age
}

func (l *Label) Updates() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updates
}

// Advance ages the label by dt seconds.
func (l *Label) Advance(dt float64) {
	l.mu.Lock()
	l.age += dt
	l.mu.Unlock()
}

// LogSink writes UI text to a logger, for headless runs.
type LogSink struct {
	logger *log.Logger
	owner  string
}

func NewLogSink(logger *log.Logger, owner string) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger, owner: owner}
}

func (s *LogSink) SetText(text string) {
	s.logger.Debug("ui text", "owner", s.owner, "text", text)
}

type tee []Sink

func (t tee) SetText(text string) {
	for _, s := range t {
		s.SetText(text)
	}
}

// Tee fans text out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
