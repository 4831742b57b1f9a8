package mail

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher decouples email delivery from order submission: sends are
// enqueued onto a fixed set of workers, sharded by recipient so a customer's
// emails keep their order. It satisfies ports.EmailSender, so the composer
// never blocks on the mail API.
type Dispatcher struct {
	workers []chan ports.OrderEmail
	sender  ports.EmailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers around
// the given synchronous sender. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.EmailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OrderEmail, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderEmail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendOrderConfirmation enqueues the email and returns immediately. When the
// responsible worker's buffer is full the email is dropped with a log entry
// rather than stalling a submission.
func (d *Dispatcher) SendOrderConfirmation(_ context.Context, email ports.OrderEmail) error {
	idx := d.shardIndex(email.Email)
	select {
	case d.workers[idx] <- email:
	default:
		d.log.Warn().Str("email", email.Email).Int("worker_id", idx).Msg("mail queue full, confirmation dropped")
	}
	return nil
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderEmail) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.SendOrderConfirmation(ctx, email); err != nil {
				d.log.Error().Err(err).
					Str("email", email.Email).
					Int("worker_id", id).
					Msg("confirmation email delivery failed")
			}
		}
	}
}
