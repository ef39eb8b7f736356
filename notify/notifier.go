package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"zombiezen.com/go/log"

	"github.com/agentdesk/policyminder/dates"
	"github.com/agentdesk/policyminder/metrics"
	"github.com/agentdesk/policyminder/records"
)

type NotifierConfig struct {
	Registry        *records.Registry
	Sender          Sender
	MetricsRegistry *metrics.MetricsRegistry
	CronSpec        string
	Location        *time.Location
}

// Notifier sweeps the reminders due today on a cron schedule, delivers
// each one through the configured Sender, and marks delivered reminders
// as notified.
type Notifier struct {
	ctx             context.Context
	registry        *records.Registry
	sender          Sender
	metricsRegistry *metrics.MetricsRegistry
	cron            *cron.Cron
	cronSpec        string
}

func NewNotifier(ctx context.Context, config NotifierConfig) *Notifier {
	location := config.Location
	if location == nil {
		location = time.Local
	}

	return &Notifier{
		ctx:             ctx,
		registry:        config.Registry,
		sender:          config.Sender,
		metricsRegistry: config.MetricsRegistry,
		cron:            cron.New(cron.WithLocation(location)),
		cronSpec:        config.CronSpec,
	}
}

// Start registers the sweep job and starts the scheduler loop.
func (n *Notifier) Start() error {
	if _, err := n.cron.AddFunc(n.cronSpec, func() {
		if err := n.metricsRegistry.TimeReminderSweep(n.Sweep); err != nil {
			log.Warnf(n.ctx, "reminder sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}
	n.cron.Start()
	log.Infof(n.ctx, "reminder sweep scheduled at %q", n.cronSpec)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (n *Notifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
}

// Sweep delivers every reminder due today. Delivery failures are
// logged and skipped; the reminder stays unnotified for the next
// sweep.
func (n *Notifier) Sweep() error {
	due := n.registry.TodayReminders()
	log.Infof(n.ctx, "reminder sweep: %d due today", len(due))

	for _, reminder := range due {
		deliveryID := fmt.Sprintf("delivery-%s-%s", reminder.ID, uuid.New().String())

		policy, ok := n.registry.PolicyByID(reminder.PolicyID)
		if !ok {
			log.Warnf(n.ctx, "[%s] reminder %s references missing policy %s, skipping", deliveryID, reminder.ID, reminder.PolicyID)
			continue
		}
		customer, ok := n.registry.CustomerByID(reminder.CustomerID)
		if !ok {
			log.Warnf(n.ctx, "[%s] reminder %s references missing customer %s, skipping", deliveryID, reminder.ID, reminder.CustomerID)
			continue
		}

		payment := reminder.DueDate.AddDate(0, 0, dates.ReminderLeadDays)
		body := fmt.Sprintf("Hi %s, the premium of %.2f for policy %s is due on %s.",
			customer.Name, policy.Premium, policy.PolicyNumber, dates.FormatDate(payment))

		if err := n.sender.Send(customer.Phone, body); err != nil {
			n.metricsRegistry.CountReminderDelivery("error")
			log.Warnf(n.ctx, "[%s] unable to deliver reminder %s: %v", deliveryID, reminder.ID, err)
			continue
		}
		if err := n.registry.MarkReminderNotified(reminder.ID); err != nil {
			log.Warnf(n.ctx, "[%s] delivered but unable to mark reminder %s notified: %v", deliveryID, reminder.ID, err)
			continue
		}
		n.metricsRegistry.CountReminderDelivery("success")
		log.Infof(n.ctx, "[%s] delivered reminder %s to %s", deliveryID, reminder.ID, customer.Name)
	}
	return nil
}
