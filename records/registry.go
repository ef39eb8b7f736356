package records

import (
	"context"
	"sync"
	"time"

	"github.com/agentdesk/policyminder/dates"
	"github.com/agentdesk/policyminder/metrics"
	"github.com/agentdesk/policyminder/storage"
	"zombiezen.com/go/log"
)

// Fixed store keys, one JSON-array blob per entity collection.
const (
	customersKey = "insurance_customers"
	policiesKey  = "insurance_policies"
	remindersKey = "insurance_reminders"
)

type RegistryConfig struct {
	Store           storage.Store
	MetricsRegistry *metrics.MetricsRegistry
	// Clock overrides time.Now, letting tests pin the current day.
	Clock func() time.Time
}

// Registry owns the three record collections and keeps each policy's
// outstanding reminder in sync with its payment day. A single mutex
// serializes mutations; the store underneath offers no isolation.
type Registry struct {
	ctx             context.Context
	mu              sync.Mutex
	store           storage.Store
	customers       *collection[Customer]
	policies        *collection[Policy]
	reminders       *collection[Reminder]
	metricsRegistry *metrics.MetricsRegistry
	now             func() time.Time
}

func NewRegistry(ctx context.Context, config RegistryConfig) *Registry {
	now := config.Clock
	if now == nil {
		now = time.Now
	}

	return &Registry{
		ctx:   ctx,
		store: config.Store,
		customers: newCollection(ctx, config.Store, customersKey, func(c Customer, id string) Customer {
			c.ID = id
			return c
		}),
		policies: newCollection(ctx, config.Store, policiesKey, func(p Policy, id string) Policy {
			p.ID = id
			return p
		}),
		reminders: newCollection(ctx, config.Store, remindersKey, func(r Reminder, id string) Reminder {
			r.ID = id
			return r
		}),
		metricsRegistry: config.MetricsRegistry,
		now:             now,
	}
}

func (r *Registry) Healthy() bool {
	return r.store.Healthy()
}

// Now reports the registry's current time, honoring a configured clock.
func (r *Registry) Now() time.Time {
	return r.now()
}

func (r *Registry) Customers() []Customer {
	return r.customers.All()
}

func (r *Registry) CustomerByID(id string) (Customer, bool) {
	return r.customers.ByID(id)
}

func (r *Registry) SaveCustomer(customer Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved, err := r.customers.Save(customer)
	if err != nil {
		return Customer{}, err
	}
	r.metricsRegistry.CountEntitySave("customer")
	return saved, nil
}

// DeleteCustomer removes the customer along with every policy and
// reminder that references it.
func (r *Registry) DeleteCustomer(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.customers.DeleteByID(id); err != nil {
		return err
	}
	if err := r.policies.DeleteWhere(func(p Policy) bool {
		return p.CustomerID == id
	}); err != nil {
		return err
	}
	if err := r.reminders.DeleteWhere(func(rem Reminder) bool {
		return rem.CustomerID == id
	}); err != nil {
		return err
	}
	r.metricsRegistry.CountEntityDelete("customer")
	r.metricsRegistry.CountCascadeDelete("customer")
	return nil
}

func (r *Registry) Policies() []Policy {
	return r.policies.All()
}

func (r *Registry) PolicyByID(id string) (Policy, bool) {
	return r.policies.ByID(id)
}

// PoliciesByCustomer returns the customer's policies in stored order.
func (r *Registry) PoliciesByCustomer(customerID string) []Policy {
	matched := make([]Policy, 0)
	for _, policy := range r.policies.All() {
		if policy.CustomerID == customerID {
			matched = append(matched, policy)
		}
	}
	return matched
}

// SavePolicy validates the policy, persists it, and recomputes its
// outstanding reminder. The customer it references must exist.
func (r *Registry) SavePolicy(policy Policy) (Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if policy.PaymentDay < 1 || policy.PaymentDay > 31 {
		return Policy{}, &ValidationError{Field: "paymentDate", Reason: "day of month must be between 1 and 31"}
	}
	if policy.Premium < 0 {
		return Policy{}, &ValidationError{Field: "premium", Reason: "must not be negative"}
	}
	if _, ok := r.customers.ByID(policy.CustomerID); !ok {
		return Policy{}, &ReferentialIntegrityError{Kind: "customer", ID: policy.CustomerID}
	}

	saved, err := r.policies.Save(policy)
	if err != nil {
		return Policy{}, err
	}
	r.metricsRegistry.CountEntitySave("policy")

	if err := r.syncPolicyReminders(saved); err != nil {
		return saved, err
	}
	return saved, nil
}

// DeletePolicy removes the policy and every reminder that references
// it.
func (r *Registry) DeletePolicy(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.policies.DeleteByID(id); err != nil {
		return err
	}
	if err := r.reminders.DeleteWhere(func(rem Reminder) bool {
		return rem.PolicyID == id
	}); err != nil {
		return err
	}
	r.metricsRegistry.CountEntityDelete("policy")
	r.metricsRegistry.CountCascadeDelete("policy")
	return nil
}

func (r *Registry) Reminders() []Reminder {
	return r.reminders.All()
}

func (r *Registry) ReminderByID(id string) (Reminder, bool) {
	return r.reminders.ByID(id)
}

func (r *Registry) SaveReminder(reminder Reminder) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved, err := r.reminders.Save(reminder)
	if err != nil {
		return Reminder{}, err
	}
	r.metricsRegistry.CountEntitySave("reminder")
	return saved, nil
}

func (r *Registry) DeleteReminder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.reminders.DeleteByID(id); err != nil {
		return err
	}
	r.metricsRegistry.CountEntityDelete("reminder")
	return nil
}

// SyncPolicyReminders recomputes the policy's single outstanding
// reminder: every prior reminder for the policy is dropped and one
// fresh reminder for the next payment is appended.
func (r *Registry) SyncPolicyReminders(policy Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncPolicyReminders(policy)
}

func (r *Registry) syncPolicyReminders(policy Policy) error {
	next := dates.NextPaymentDate(policy.PaymentDay, r.now())
	due := dates.ReminderDate(next)

	reminders := r.reminders.All()
	kept := make([]Reminder, 0, len(reminders)+1)
	for _, reminder := range reminders {
		if reminder.PolicyID != policy.ID {
			kept = append(kept, reminder)
		}
	}
	kept = append(kept, Reminder{
		ID:         NewID(),
		PolicyID:   policy.ID,
		CustomerID: policy.CustomerID,
		DueDate:    due,
		Notified:   false,
	})

	if err := r.reminders.write(kept); err != nil {
		return err
	}
	r.metricsRegistry.CountReminderSync()
	log.Debugf(r.ctx, "reminder for policy %s due %s", policy.ID, dates.FormatDate(due))
	return nil
}

// TodayReminders returns reminders due on the current calendar day that
// have not been notified yet.
func (r *Registry) TodayReminders() []Reminder {
	now := r.now()
	due := make([]Reminder, 0)
	for _, reminder := range r.reminders.All() {
		if !reminder.Notified && dates.SameDay(reminder.DueDate, now) {
			due = append(due, reminder)
		}
	}
	return due
}

// UpcomingReminders returns reminders due in the inclusive window from
// today through seven days out, notified or not.
func (r *Registry) UpcomingReminders() []Reminder {
	start := dates.Midnight(r.now())
	end := start.AddDate(0, 0, 7)

	upcoming := make([]Reminder, 0)
	for _, reminder := range r.reminders.All() {
		day := dates.Midnight(reminder.DueDate)
		if !day.Before(start) && !day.After(end) {
			upcoming = append(upcoming, reminder)
		}
	}
	return upcoming
}

// MarkReminderNotified flags the reminder as delivered. A missing id is
// a no-op.
func (r *Registry) MarkReminderNotified(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders := r.reminders.All()
	for i, reminder := range reminders {
		if reminder.ID == id {
			reminders[i].Notified = true
		}
	}
	return r.reminders.write(reminders)
}
