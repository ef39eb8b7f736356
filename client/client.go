package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/agentdesk/policyminder/records"
)

// Client is a programmatic caller of the policyminder JSON API.
type Client struct {
	ctx        context.Context
	baseURL    string
	httpClient *http.Client
}

func NewClient(ctx context.Context, baseURL string) *Client {
	return &Client{
		ctx:        ctx,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("unable to encode request: %v", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(c.ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to call %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("unable to decode %s response: %v", path, err)
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *Client) Customers() ([]records.Customer, error) {
	customers := make([]records.Customer, 0)
	err := c.do(http.MethodGet, "/api/customers", nil, &customers)
	return customers, err
}

func (c *Client) CustomerByID(id string) (records.Customer, error) {
	var customer records.Customer
	err := c.do(http.MethodGet, "/api/customers/"+id, nil, &customer)
	return customer, err
}

func (c *Client) SaveCustomer(customer records.Customer) (records.Customer, error) {
	var saved records.Customer
	err := c.do(http.MethodPost, "/api/customers", customer, &saved)
	return saved, err
}

func (c *Client) DeleteCustomer(id string) error {
	return c.do(http.MethodDelete, "/api/customers/"+id, nil, nil)
}

func (c *Client) Policies() ([]records.Policy, error) {
	policies := make([]records.Policy, 0)
	err := c.do(http.MethodGet, "/api/policies", nil, &policies)
	return policies, err
}

func (c *Client) PoliciesByCustomer(customerID string) ([]records.Policy, error) {
	policies := make([]records.Policy, 0)
	err := c.do(http.MethodGet, "/api/customers/"+customerID+"/policies", nil, &policies)
	return policies, err
}

func (c *Client) SavePolicy(policy records.Policy) (records.Policy, error) {
	var saved records.Policy
	err := c.do(http.MethodPost, "/api/policies", policy, &saved)
	return saved, err
}

func (c *Client) DeletePolicy(id string) error {
	return c.do(http.MethodDelete, "/api/policies/"+id, nil, nil)
}

func (c *Client) RefreshPolicyReminders(policyID string) error {
	return c.do(http.MethodPost, "/api/policies/"+policyID+"/reminders/refresh", nil, nil)
}

func (c *Client) Reminders() ([]records.Reminder, error) {
	reminders := make([]records.Reminder, 0)
	err := c.do(http.MethodGet, "/api/reminders", nil, &reminders)
	return reminders, err
}

func (c *Client) TodayReminders() ([]records.Reminder, error) {
	reminders := make([]records.Reminder, 0)
	err := c.do(http.MethodGet, "/api/reminders/today", nil, &reminders)
	return reminders, err
}

func (c *Client) UpcomingReminders() ([]records.Reminder, error) {
	reminders := make([]records.Reminder, 0)
	err := c.do(http.MethodGet, "/api/reminders/upcoming", nil, &reminders)
	return reminders, err
}

func (c *Client) MarkReminderNotified(id string) error {
	return c.do(http.MethodPost, "/api/reminders/"+id+"/notified", nil, nil)
}
