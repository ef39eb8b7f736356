package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentdesk/policyminder/metrics"
	"github.com/agentdesk/policyminder/records"
	"github.com/agentdesk/policyminder/service"
	"github.com/agentdesk/policyminder/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC)
	registry := records.NewRegistry(context.Background(), records.RegistryConfig{
		Store:           storage.NewMemoryStore(),
		MetricsRegistry: metrics.NewMetricRegistry(0),
		Clock:           func() time.Time { return now },
	})
	server := service.NewServer(context.Background(), registry, metrics.NewMetricRegistry(0))

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	return NewClient(context.Background(), ts.URL)
}

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	customer, err := c.SaveCustomer(records.Customer{Name: "Asha", Phone: "555-0100"})
	require.NoError(t, err)
	require.NotEmpty(t, customer.ID)

	policy, err := c.SavePolicy(records.Policy{CustomerID: customer.ID, PolicyNumber: "P-1", PaymentDay: 18, Premium: 99})
	require.NoError(t, err)
	require.NotEmpty(t, policy.ID)

	policies, err := c.PoliciesByCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, policy.ID, policies[0].ID)

	// Payment day 18 from April 15 puts a reminder due today.
	today, err := c.TodayReminders()
	require.NoError(t, err)
	require.Len(t, today, 1)

	require.NoError(t, c.MarkReminderNotified(today[0].ID))

	today, err = c.TodayReminders()
	require.NoError(t, err)
	assert.Empty(t, today)

	require.NoError(t, c.DeleteCustomer(customer.ID))
	customers, err := c.Customers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	_, err := c.CustomerByID("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = c.SavePolicy(records.Policy{CustomerID: "ghost", PaymentDay: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
