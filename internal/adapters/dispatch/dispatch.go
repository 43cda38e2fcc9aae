// Package dispatch fans reminder messages out to offenders through a
// pool of concurrent senders, capturing one outcome per recipient.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bva/billabot/internal/adapters/chat"
	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/pkg/logger"
	"github.com/bva/billabot/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultSenderCount = 4
)

const reminderTemplate = "Hi! Just wanted to let you know that your billable hours" +
	" were looking kinda low for this week. You've currently tracked %.2f hours" +
	" and you should be at roughly %.2f. ok, byeeeeeeeeeeeeee."

// Pool sends reminders to a batch of offenders. Sends are independent:
// one recipient's failure never blocks the rest, and no ordering is
// guaranteed between recipients.
type Pool struct {
	messenger chat.Messenger
	senders   int
	logger    logger.Logger
}

// NewPool creates a sender pool over messenger.
func NewPool(messenger chat.Messenger, opts ...Option) *Pool {
	p := &Pool{
		messenger: messenger,
		senders:   defaultSenderCount,
		logger:    logger.Get().Named("dispatch"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Notify joins offenders against the roster by display name and sends
// one reminder per matched recipient, quoting the tracked hours and
// the target. Names absent from the roster produce a join-miss outcome
// and are skipped silently; duplicate roster names resolve last-wins,
// and duplicate offender names send once. The returned outcomes carry
// one Delivery per attempted recipient, in no particular order.
func (p *Pool) Notify(ctx context.Context, offenders []model.Offender, roster []model.Person, targetHours float64) []model.Delivery {
	start := time.Now()
	defer func() {
		metrics.RecordDispatchLatency(float64(time.Since(start).Milliseconds()))
	}()

	byName := make(map[string]string, len(roster))
	for _, person := range roster {
		byName[person.Name] = person.ID
	}

	jobs := make(chan model.Offender)
	results := make(chan model.Delivery, len(offenders))

	var wg sync.WaitGroup
	for i := 0; i < p.senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for offender := range jobs {
				results <- p.send(ctx, offender, byName, targetHours)
			}
		}()
	}

	queued := 0
	seen := make(map[string]bool, len(offenders))
	for _, offender := range offenders {
		if seen[offender.Name] {
			continue
		}
		seen[offender.Name] = true
		jobs <- offender
		queued++
	}
	close(jobs)
	wg.Wait()
	close(results)

	deliveries := make([]model.Delivery, 0, queued)
	for d := range results {
		metrics.RecordDelivery(string(d.Status))
		deliveries = append(deliveries, d)
	}
	return deliveries
}

// send handles one recipient.
func (p *Pool) send(ctx context.Context, offender model.Offender, byName map[string]string, targetHours float64) model.Delivery {
	delivery := model.Delivery{
		ID:   uuid.NewString(),
		Name: offender.Name,
	}

	userID, ok := byName[offender.Name]
	if !ok {
		delivery.Status = model.DeliveryJoinMiss
		p.logger.Debug(ctx, "offender not in directory, skipping",
			logger.String("name", offender.Name),
		)
		return delivery
	}
	delivery.UserID = userID

	text := fmt.Sprintf(reminderTemplate, offender.BillableHours, targetHours)
	if err := p.messenger.SendDM(ctx, userID, text); err != nil {
		delivery.Status = model.DeliveryFailed
		delivery.Err = err
		p.logger.Error(ctx, "reminder delivery failed",
			logger.String("name", offender.Name),
			logger.String("user", userID),
			logger.Error(err),
		)
		return delivery
	}

	delivery.Status = model.DeliverySent
	return delivery
}
