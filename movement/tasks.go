package movement

// Task is a resumable timed effect advanced once per step. Advance returns
// true once the task has finished; Abort stops it early and must undo any
// flag or lease the task still holds.
type Task interface {
	Name() string
	Advance(c *Controller, t Tick) (done bool)
	Abort(c *Controller)
}

// TaskScheduler keeps independent in-flight tasks. Tasks started while the
// scheduler is advancing run from the next step on.
type TaskScheduler struct {
	tasks   []Task
	pending []Task
	running bool
}

// Start schedules t.
func (s *TaskScheduler) Start(t Task) {
	if t == nil {
		return
	}
	if s.running {
		s.pending = append(s.pending, t)
		return
	}
	s.tasks = append(s.tasks, t)
}

// Advance steps every task once and drops the finished ones.
func (s *TaskScheduler) Advance(c *Controller, t Tick) {
	s.running = true
	live := s.tasks[:0]
	for _, task := range s.tasks {
		if task == nil {
			continue
		}
		if !task.Advance(c, t) {
			live = append(live, task)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
	s.running = false

	if len(s.pending) > 0 {
		s.tasks = append(s.tasks, s.pending...)
		for i := range s.pending {
			s.pending[i] = nil
		}
		s.pending = s.pending[:0]
	}
}

// Cancel aborts and removes the given task if it is scheduled.
func (s *TaskScheduler) Cancel(c *Controller, t Task) {
	if t == nil {
		return
	}
	for i, task := range s.tasks {
		if task == t {
			task.Abort(c)
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
	for i, task := range s.pending {
		if task == t {
			task.Abort(c)
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// CancelAll aborts every task.
func (s *TaskScheduler) CancelAll(c *Controller) {
	for _, task := range append(s.tasks, s.pending...) {
		if task != nil {
			task.Abort(c)
		}
	}
	for i := range s.tasks {
		s.tasks[i] = nil
	}
	for i := range s.pending {
		s.pending[i] = nil
	}
	s.tasks = s.tasks[:0]
	s.pending = s.pending[:0]
}

// Running reports whether a task with the given name is in flight.
func (s *TaskScheduler) Running(name string) bool {
	for _, task := range s.tasks {
		if task != nil && task.Name() == name {
			return true
		}
	}
	for _, task := range s.pending {
		if task != nil && task.Name() == name {
			return true
		}
	}
	return false
}

// Len returns the number of scheduled tasks.
func (s *TaskScheduler) Len() int {
	return len(s.tasks) + len(s.pending)
}

// freezeTask holds a time-scale lease for a real-time duration.
type freezeTask struct {
	name     string
	lease    *ScaleLease
	duration float64
	elapsed  float64
}

func newFreezeTask(name string, clock *TimeScale, scale, duration float64) *freezeTask {
	return &freezeTask{
		name:     name,
		lease:    clock.Acquire(scale),
		duration: duration,
	}
}

func (f *freezeTask) Name() string { return f.name }

func (f *freezeTask) Advance(_ *Controller, t Tick) bool {
	f.elapsed += t.Real
	if f.elapsed+timeEpsilon < f.duration {
		return false
	}
	f.lease.Release()
	return true
}

func (f *freezeTask) Abort(*Controller) {
	f.lease.Release()
}
