package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.registry.Reminders()})
}

func (s *Server) ListTodayReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.registry.TodayReminders()})
}

func (s *Server) ListUpcomingReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.registry.UpcomingReminders()})
}

func (s *Server) GetReminderByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	reminder, found := s.registry.ReminderByID(id)
	if !found {
		s.abortNotFound(c, "reminder", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reminder})
}

func (s *Server) DeleteReminder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.registry.DeleteReminder(id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) MarkReminderNotified(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.registry.MarkReminderNotified(id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
