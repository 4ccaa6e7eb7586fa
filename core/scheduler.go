package core

// Task is a cooperative scheduled job. The handler returns TaskDone to drop
// the task or TaskReschedule to run again Period milliseconds later.
type Task struct {
	WakeTime uint64 // next due instant, in monotonic milliseconds
	Period   uint64 // reschedule interval for TaskReschedule results
	Handler  func(nowMs uint64) uint8
	next     *Task
}

// Handler results.
const (
	TaskDone       = 0
	TaskReschedule = 1
)

// Scheduler dispatches tasks in WakeTime order from a single loop. It is not
// safe for concurrent use.
type Scheduler struct {
	tasks *Task
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule adds a task. A zero WakeTime makes the task due on the first
// dispatch.
func (s *Scheduler) Schedule(t *Task) {
	s.insert(t)
}

// insert places a task in sorted order by WakeTime.
func (s *Scheduler) insert(t *Task) {
	if s.tasks == nil || t.WakeTime < s.tasks.WakeTime {
		t.next = s.tasks
		s.tasks = t
		return
	}
	current := s.tasks
	for current.next != nil && current.next.WakeTime <= t.WakeTime {
		current = current.next
	}
	t.next = current.next
	current.next = t
}

// Dispatch runs every task whose WakeTime has passed. An overdue periodic
// task is pushed forward past nowMs rather than replayed for each missed
// period, so a stalled loop cannot cause a dispatch storm.
func (s *Scheduler) Dispatch(nowMs uint64) {
	for s.tasks != nil && s.tasks.WakeTime <= nowMs {
		t := s.tasks
		s.tasks = t.next
		t.next = nil

		if t.Handler(nowMs) == TaskReschedule {
			t.WakeTime += t.Period
			if t.WakeTime <= nowMs {
				t.WakeTime = nowMs + t.Period
			}
			s.insert(t)
		}
	}
}
