package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/poyobook/poyobook/internal/api/metrics"
	"github.com/poyobook/poyobook/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

// Dispatcher delivers recovery mails on a fixed set of workers, sharded by
// recipient address so repeated requests for one account stay ordered. When
// a shard's buffer is full the job is dropped and logged; the user can
// request another mail.
type Dispatcher struct {
	workers []chan ports.RecoveryMailJob
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RecoveryMailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RecoveryMailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail job to the worker responsible for its recipient
// without ever blocking the caller.
func (d *Dispatcher) Enqueue(job ports.RecoveryMailJob) {
	i := d.shardIndex(job.Email)
	select {
	case d.workers[i] <- job:
	default:
		metrics.RecoveryMailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("email", job.Email).
			Int("worker_id", i).
			Msg("mail queue full, recovery mail dropped")
	}
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RecoveryMailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.SendRecovery(ctx, job.Email, job.Token); err != nil {
				metrics.RecoveryMailsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("email", job.Email).
					Int("worker_id", id).
					Msg("recovery mail delivery failed")
			} else {
				metrics.RecoveryMailsTotal.WithLabelValues("sent").Inc()
			}
			metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
