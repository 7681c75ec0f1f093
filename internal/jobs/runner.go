package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// Job is a unit of background work.
type Job interface {
	Run()
}

// CronJob is a job with its own cron schedule.
type CronJob interface {
	Schedule() string
	Job
}

// Runner schedules background jobs on a shared cron. A job that is still
// running when its next slot fires is skipped rather than stacked.
type Runner struct {
	cron    *cron.Cron
	jobs    []CronJob
	running mapset.Set[CronJob]
	mu      sync.Mutex
}

func NewRunner(jobs ...CronJob) *Runner {
	return &Runner{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[CronJob](),
	}
}

// Start registers every job with the cron and starts it.
func (r *Runner) Start() {
	for _, job := range r.jobs {
		job := job
		err := r.cron.AddFunc(job.Schedule(), func() {
			r.mu.Lock()
			if r.running.Contains(job) {
				r.mu.Unlock()
				logrus.Warn("job is already running, skipping this slot")
				return
			}
			r.running.Add(job)
			r.mu.Unlock()

			defer func() {
				r.mu.Lock()
				defer r.mu.Unlock()
				r.running.Remove(job)
			}()

			job.Run()
		})
		if err != nil {
			logrus.Errorf("failed to schedule job: %v", err)
			panic(err)
		}
	}

	r.cron.Start()
}

// Stop stops the cron. Jobs already running finish on their own.
func (r *Runner) Stop() {
	logrus.Info("stopping background jobs")
	r.cron.Stop()
}
