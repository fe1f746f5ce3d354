// Package telemetry records per-tick traces of the hook and the player as
// CSV.
package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/grapplinghook/hook"
)

// Sample is one tick of a trace.
type Sample struct {
	Frame      int     `csv:"frame"`
	Time       float64 `csv:"time"`
	State      string  `csv:"state"`
	PlayerX    float64 `csv:"player_x"`
	PlayerY    float64 `csv:"player_y"`
	VelX       float64 `csv:"vel_x"`
	VelY       float64 `csv:"vel_y"`
	Speed      float64 `csv:"speed"`
	HookX      float64 `csv:"hook_x"`
	HookY      float64 `csv:"hook_y"`
	RopeLength float64 `csv:"rope_length"`
	Grounded   bool    `csv:"grounded"`
	Towing     bool    `csv:"towing"`
	TimeScale  float64 `csv:"time_scale"`
}

// Capture samples h and its character.
func Capture(frame int, t float64, h *hook.GrapplingHook, timeScale float64) Sample {
	s := Sample{
		Frame:     frame,
		Time:      t,
		State:     h.State().String(),
		Towing:    h.Towing(),
		TimeScale: timeScale,
	}
	pos := h.Position()
	s.HookX, s.HookY = pos.X, pos.Y
	if rope := h.Rope(); len(rope) == 2 {
		s.RopeLength = rope[0].Distance(rope[1])
	}
	if c := h.Character(); c != nil {
		p, v := c.Position(), c.Velocity()
		s.PlayerX, s.PlayerY = p.X, p.Y
		s.VelX, s.VelY = v.X, v.Y
		s.Speed = v.Length()
		s.Grounded = c.IsOnGround()
	}
	return s
}

const defaultBatch = 64

// TraceWriter buffers samples and writes them as CSV, with the header on
// the first batch only.
type TraceWriter struct {
	out           io.Writer
	batch         []Sample
	size          int
	headerWritten bool
	written       int
}

func NewTraceWriter(out io.Writer) *TraceWriter {
	return &TraceWriter{out: out, size: defaultBatch}
}

// Write queues s, flushing when the batch is full.
func (w *TraceWriter) Write(s Sample) error {
	w.batch = append(w.batch, s)
	if len(w.batch) >= w.size {
		return w.Flush()
	}
	return nil
}

// Flush writes the queued samples.
func (w *TraceWriter) Flush() error {
	if len(w.batch) == 0 {
		return nil
	}
	if !w.headerWritten {
		if err := gocsv.Marshal(w.batch, w.out); err != nil {
			return fmt.Errorf("telemetry: write trace: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(w.batch, w.out); err != nil {
			return fmt.Errorf("telemetry: write trace: %w", err)
		}
	}
	w.written += len(w.batch)
	w.batch = w.batch[:0]
	return nil
}

// Written returns the number of samples flushed so far.
func (w *TraceWriter) Written() int { return w.written }
