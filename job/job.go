package job

import (
	"runtime/debug"
	"time"

	"github.com/gobuffalo/buffalo/worker"

	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
	"github.com/silinternational/cover-agri/models"
)

const (
	handlerKey = "job_handler"
	argJobType = "job_type"
)

const (
	StatusSync = "status_sync"
	Checkpoint = "checkpoint"
)

var w *worker.Worker

var handlers = map[string]func(worker.Args) error{
	StatusSync: statusSyncHandler,
	Checkpoint: checkpointHandler,
}

var (
	claimStore   *models.ClaimStore
	statusSource StatusSource
)

// Init registers the job handler and schedules the first run of each recurring job
func Init(appWorker *worker.Worker, store *models.ClaimStore, source StatusSource) {
	w = appWorker
	claimStore = store
	statusSource = source

	if err := (*w).Register(handlerKey, mainHandler); err != nil {
		log.Errorf("error registering '%s' handler, %s", handlerKey, err)
	}

	delay := time.Second * 10

	// spread the first status sync over a few minutes outside of development
	if domain.Env.GoEnv != domain.EnvDevelopment {
		delay = time.Duration(domain.RandomInsecureIntInRange(60, 300)) * time.Second
	}

	if err := SubmitDelayed(StatusSync, delay, map[string]any{}); err != nil {
		log.Error("error initializing StatusSync job:", err)
	}
	if err := SubmitDelayed(Checkpoint, checkpointInterval(), map[string]any{}); err != nil {
		log.Error("error initializing Checkpoint job:", err)
	}
}

func mainHandler(args worker.Args) error {
	jobType, _ := args[argJobType].(string)
	handler, ok := handlers[jobType]
	if !ok {
		log.Errorf("no handler for job type '%s'", jobType)
		return nil
	}

	log.Infof("starting %s job", jobType)
	start := time.Now().UTC()

	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic in job handler %s: %s\n%s", jobType, err, debug.Stack())
		}
	}()

	if err := handler(args); err != nil {
		log.Errorf("job %s failed: %s", jobType, err)
	}

	log.Infof("completed %s job in %s", jobType, time.Since(start))
	return nil
}

// Submit enqueues a new Worker job for the given job type. Arguments can be provided in `args`.
func Submit(jobType string, args map[string]any) error {
	if domain.Env.GoEnv == domain.EnvTest {
		return nil
	}
	job := worker.Job{
		Queue:   "default",
		Args:    args,
		Handler: handlerKey,
	}
	job.Args[argJobType] = jobType
	return (*w).Perform(job)
}

// SubmitDelayed enqueues a delayed Worker job for the given job type. Arguments can be provided in `args`.
func SubmitDelayed(jobType string, delay time.Duration, args map[string]any) error {
	if domain.Env.GoEnv == domain.EnvTest {
		return nil
	}
	job := worker.Job{
		Queue:   "default",
		Args:    args,
		Handler: handlerKey,
	}
	job.Args[argJobType] = jobType
	return (*w).PerformIn(job, delay)
}
