package records

import "time"

// Customer is an insured client tracked by the agent.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c Customer) EntityID() string {
	return c.ID
}

// Policy is an insurance policy owned by a customer. PaymentDay is the
// day of month (1-31) the premium recurs on; the wire name paymentDate
// is kept for compatibility with existing stored data.
type Policy struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customerId"`
	PolicyNumber string  `json:"policyNumber"`
	PolicyType   string  `json:"policyType"`
	StartDate    string  `json:"startDate"`
	PaymentDay   int     `json:"paymentDate"`
	Premium      float64 `json:"premium"`
	Notes        string  `json:"notes,omitempty"`
}

func (p Policy) EntityID() string {
	return p.ID
}

// Reminder is the outstanding payment reminder for a policy. CustomerID
// is denormalized from the policy so customer-level queries and cascade
// deletes need no join.
type Reminder struct {
	ID         string    `json:"id"`
	PolicyID   string    `json:"policyId"`
	CustomerID string    `json:"customerId"`
	DueDate    time.Time `json:"dueDate"`
	Notified   bool      `json:"notified"`
}

func (r Reminder) EntityID() string {
	return r.ID
}

// Entity is anything storable in a collection.
type Entity interface {
	EntityID() string
}
