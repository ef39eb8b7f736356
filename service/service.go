package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/policyminder/metrics"
	"github.com/agentdesk/policyminder/records"
)

// Server exposes the record registry to UI callers as a JSON API.
type Server struct {
	ctx             context.Context
	registry        *records.Registry
	metricsRegistry *metrics.MetricsRegistry
}

func NewServer(ctx context.Context, registry *records.Registry, metricsRegistry *metrics.MetricsRegistry) *Server {
	return &Server{
		ctx:             ctx,
		registry:        registry,
		metricsRegistry: metricsRegistry,
	}
}

// Router builds the gin engine with every API route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.Healthz)

	api := router.Group("/api")
	{
		api.GET("/customers", s.ListCustomers)
		api.POST("/customers", s.SaveCustomer)
		api.GET("/customers/:id", s.GetCustomerByID)
		api.DELETE("/customers/:id", s.DeleteCustomer)
		api.GET("/customers/:id/policies", s.ListCustomerPolicies)

		api.GET("/policies", s.ListPolicies)
		api.POST("/policies", s.SavePolicy)
		api.GET("/policies/:id", s.GetPolicyByID)
		api.DELETE("/policies/:id", s.DeletePolicy)
		api.GET("/policies/:id/schedule", s.GetPolicySchedule)
		api.POST("/policies/:id/reminders/refresh", s.RefreshPolicyReminders)

		api.GET("/reminders", s.ListReminders)
		api.GET("/reminders/today", s.ListTodayReminders)
		api.GET("/reminders/upcoming", s.ListUpcomingReminders)
		api.GET("/reminders/:id", s.GetReminderByID)
		api.DELETE("/reminders/:id", s.DeleteReminder)
		api.POST("/reminders/:id/notified", s.MarkReminderNotified)
	}

	return router
}

func (s *Server) Healthz(c *gin.Context) {
	if !s.registry.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	var valErr *records.ValidationError
	var refErr *records.ReferentialIntegrityError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
	case errors.As(err, &refErr):
		status = http.StatusUnprocessableEntity
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) abortNotFound(c *gin.Context, kind, id string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": kind + " " + id + " not found"})
}
