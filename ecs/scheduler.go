package ecs

import "slices"

// System is one stage of a world tick.
type System interface {
	Update(w *World)
}

// SystemFunc lets a plain function run as a stage.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler holds the stage order of a tick. Levels install player input
// first and the physics step last so every query in between sees bodies
// where this tick's movement put them.
type Scheduler struct {
	stages []System
}

func NewScheduler(stages ...System) *Scheduler {
	s := &Scheduler{}
	s.Add(stages...)
	return s
}

// Add appends stages, skipping nil ones.
func (s *Scheduler) Add(stages ...System) {
	for _, st := range stages {
		if st != nil {
			s.stages = append(s.stages, st)
		}
	}
}

func (s *Scheduler) Update(w *World) {
	for _, st := range s.stages {
		st.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	return slices.Clone(s.stages)
}
