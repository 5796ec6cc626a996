package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	l := NewLabel("Patrol")
	l.Advance(1.5)
	assert.Equal(t, 1.5, l.Age())

	l.SetText("Chase")
	assert.Equal(t, "Chase", l.Text())
	assert.Equal(t, 0.0, l.Age())
	assert.Equal(t, 1, l.Updates())
}

func TestTeeAndLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	a := NewLabel("")
	b := NewLabel("")
	Tee(a, nil, b, NewLogSink(logger, "grunt-1")).SetText("Dead")

	assert.Equal(t, "Dead", a.Text())
	assert.Equal(t, "Dead", b.Text())
	assert.Contains(t, buf.String(), "grunt-1")
	assert.Contains(t, buf.String(), "Dead")
}
