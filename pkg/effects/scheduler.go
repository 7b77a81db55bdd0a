package effects

import (
	"container/heap"
	"log"
	"sync/atomic"
	"time"
)

// Series is the handle of one ScheduleSeries call.
type Series struct {
	total     int
	fired     atomic.Int32
	cancelled atomic.Bool
}

// Cancel stops the tasks of this series that have not fired yet.
func (s *Series) Cancel() {
	if s != nil {
		s.cancelled.Store(true)
	}
}

// Cancelled reports whether Cancel was called or the scheduler was reset.
func (s *Series) Cancelled() bool {
	return s != nil && s.cancelled.Load()
}

// Fired returns how many tasks of the series have run.
func (s *Series) Fired() int {
	if s == nil {
		return 0
	}
	return int(s.fired.Load())
}

// Len returns the number of tasks in the series.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return s.total
}

// Done reports whether no task of the series is left to run.
func (s *Series) Done() bool {
	return s == nil || s.Cancelled() || s.Fired() >= s.total
}

type burstTask struct {
	due    time.Duration
	seq    uint64
	gen    uint64
	index  int
	series *Series
	fn     func(i int)
}

// taskQueue is a min-heap ordered by (due, seq).
type taskQueue []*burstTask

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*burstTask)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler runs delayed particle creations against a virtual clock.
// The clock only moves when Advance is called, so the owner decides what a
// tick is worth and tests can step time synchronously.
//
// Scheduler is not safe for concurrent use; the effect manager serialises
// access to it.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	gen   uint64
	queue taskQueue
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ScheduleSeries schedules fn(i) for i in [0, n) to run i*interval after now.
// Task 0 runs on the next Advance.
func (s *Scheduler) ScheduleSeries(n int, interval time.Duration, fn func(i int)) *Series {
	if n < 0 || fn == nil {
		n = 0
	}
	if interval < 0 {
		interval = 0
	}

	series := &Series{total: n}
	for i := 0; i < n; i++ {
		heap.Push(&s.queue, &burstTask{
			due:    s.now + time.Duration(i)*interval,
			seq:    s.seq,
			gen:    s.gen,
			index:  i,
			series: series,
			fn:     fn,
		})
		s.seq++
	}
	return series
}

// Advance moves the clock forward by dt and runs every task that is due, in
// (due, scheduling order). Tasks scheduled while advancing wait for the next
// call. Returns the number of tasks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	limit := s.seq
	ran := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > s.now || next.seq >= limit {
			break
		}
		heap.Pop(&s.queue)

		if next.gen != s.gen || next.series.Cancelled() {
			continue
		}
		s.run(next)
		ran++
	}
	return ran
}

func (s *Scheduler) run(t *burstTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[BurstScheduler] task %d of series panicked: %v", t.index, r)
		}
	}()
	t.series.fired.Add(1)
	t.fn(t.index)
}

// Pending returns the number of tasks that will still run.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if t.gen == s.gen && !t.series.Cancelled() {
			n++
		}
	}
	return n
}

// Now returns the virtual clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Generation returns the current generation token.
// Reset increments it and invalidates every task scheduled before.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// Reset drops every pending task. The clock keeps running.
func (s *Scheduler) Reset() {
	for _, t := range s.queue {
		t.series.Cancel()
	}
	s.queue = nil
	s.gen++
}
