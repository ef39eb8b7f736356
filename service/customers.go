package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/policyminder/records"
)

func (s *Server) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.registry.Customers()})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	customer, found := s.registry.CustomerByID(id)
	if !found {
		s.abortNotFound(c, "customer", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// SaveCustomer creates a customer when the body carries no id and
// updates the existing one otherwise.
func (s *Server) SaveCustomer(c *gin.Context) {
	var customer records.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var saved records.Customer
	err := s.metricsRegistry.TimeHTTPEndpoint("save_customer", func() error {
		var saveErr error
		saved, saveErr = s.registry.SaveCustomer(customer)
		return saveErr
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": saved})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	err := s.metricsRegistry.TimeHTTPEndpoint("delete_customer", func() error {
		return s.registry.DeleteCustomer(id)
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListCustomerPolicies(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, found := s.registry.CustomerByID(id); !found {
		s.abortNotFound(c, "customer", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.registry.PoliciesByCustomer(id)})
}
