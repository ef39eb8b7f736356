package service

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/policyminder/dates"
	"github.com/agentdesk/policyminder/records"
)

func (s *Server) ListPolicies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.registry.Policies()})
}

func (s *Server) GetPolicyByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	policy, found := s.registry.PolicyByID(id)
	if !found {
		s.abortNotFound(c, "policy", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": policy})
}

// SavePolicy persists the policy and recomputes its reminder. The
// referenced customer must exist.
func (s *Server) SavePolicy(c *gin.Context) {
	var policy records.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var saved records.Policy
	err := s.metricsRegistry.TimeHTTPEndpoint("save_policy", func() error {
		var saveErr error
		saved, saveErr = s.registry.SavePolicy(policy)
		return saveErr
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": saved})
}

func (s *Server) DeletePolicy(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	err := s.metricsRegistry.TimeHTTPEndpoint("delete_policy", func() error {
		return s.registry.DeletePolicy(id)
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPolicySchedule returns the policy's next payment date, reminder
// date, and the upcoming payment dates for the requested number of
// months (default 3).
func (s *Server) GetPolicySchedule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	policy, found := s.registry.PolicyByID(id)
	if !found {
		s.abortNotFound(c, "policy", id)
		return
	}

	months := 3
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = parsed
	}

	now := s.registry.Now()
	next := dates.NextPaymentDate(policy.PaymentDay, now)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"nextPaymentDate": next,
		"reminderDate":    dates.ReminderDate(next),
		"upcoming":        dates.UpcomingPaymentDates(policy.PaymentDay, now, months),
	}})
}

// RefreshPolicyReminders is the explicit "refresh reminder" action.
func (s *Server) RefreshPolicyReminders(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	policy, found := s.registry.PolicyByID(id)
	if !found {
		s.abortNotFound(c, "policy", id)
		return
	}

	if err := s.registry.SyncPolicyReminders(policy); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
