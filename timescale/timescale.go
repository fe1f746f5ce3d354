// Package timescale runs the slow-motion effect the hook requests on launches
// and pulls.
package timescale

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const minScale = 0.01

// Manager holds the game time scale. A request drops the scale at once and
// eases it back to 1 over the requested real-time seconds.
type Manager struct {
	// Ease shapes the return to normal speed.
	Ease ease.TweenFunc

	scale float64
	tween *gween.Tween
}

func NewManager() *Manager {
	return &Manager{Ease: ease.InQuad, scale: 1}
}

// RequestTimeScale implements hook.TimeController. A request replaces any
// effect still running.
func (m *Manager) RequestTimeScale(scale, seconds float64) {
	if scale < minScale {
		scale = minScale
	}
	if scale >= 1 || seconds <= 0 {
		m.Reset()
		return
	}
	m.scale = scale
	m.tween = gween.New(float32(scale), 1, float32(seconds), m.Ease)
}

// Update advances the effect by dt seconds of real time.
func (m *Manager) Update(dt float64) {
	if m.tween == nil {
		return
	}
	v, done := m.tween.Update(float32(dt))
	m.scale = float64(v)
	if done {
		m.Reset()
	}
}

// Reset drops any running effect.
func (m *Manager) Reset() {
	m.tween = nil
	m.scale = 1
}

func (m *Manager) Scale() float64 { return m.scale }

func (m *Manager) Active() bool { return m.tween != nil }

// Scaled converts a real-time step into game time.
func (m *Manager) Scaled(dt float64) float64 { return dt * m.scale }
