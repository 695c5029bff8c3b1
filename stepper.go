package textstrip

import "time"

// Stepper accumulates elapsed wall-clock time and converts it into a whole
// number of fixed simulation steps. The backlog is clamped to one second so
// a long stall cannot spiral into an ever-growing step debt.
type Stepper struct {
	dt  float64
	acc float64
}

// NewStepper creates a stepper with a fixed timestep of dt seconds.
func NewStepper(dt float64) *Stepper {
	return &Stepper{dt: dt}
}

// DT returns the fixed timestep in seconds.
func (s *Stepper) DT() float64 {
	return s.dt
}

// Advance adds elapsed seconds to the backlog and returns how many fixed
// steps are now due. The remainder stays accumulated for the next call.
func (s *Stepper) Advance(elapsed float64) int {
	if s.dt <= 0 {
		return 0
	}
	s.acc += elapsed
	if s.acc > 1 {
		s.acc = 1
	}
	n := 0
	for s.acc >= s.dt {
		s.acc -= s.dt
		n++
	}
	return n
}

// Run drives a fixed-timestep loop until shouldClose reports true.
// step is called once per due fixed step with dt; render is called once per
// iteration after all due steps, matching the one-draw-per-render-step
// driver contract. When no step was due, the loop sleeps briefly instead of
// spinning.
func Run(dt float64, shouldClose func() bool, step func(dt float64) error, render func() error) error {
	s := NewStepper(dt)
	idle := time.Duration(dt * 0.25 * float64(time.Second))
	last := time.Now()

	for !shouldClose() {
		now := time.Now()
		n := s.Advance(now.Sub(last).Seconds())
		last = now

		for i := 0; i < n; i++ {
			if err := step(dt); err != nil {
				return err
			}
		}
		if err := render(); err != nil {
			return err
		}
		if n == 0 {
			time.Sleep(idle)
		}
	}
	return nil
}
