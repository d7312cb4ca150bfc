// controller/audit_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/nikhilsag/hrbridge/audit"
	"github.com/nikhilsag/hrbridge/controller"
	"github.com/nikhilsag/hrbridge/test/mock"
)

func TestAuditController(t *testing.T) {
	mockAuditService := new(mock.MockAuditService)
	auditController := controller.NewAuditController(mockAuditService)
	router := setupRouter()
	api := router.Group("/")
	auditController.RegisterRoutes(api)

	t.Run("QueryLogs_DefaultWindow", func(t *testing.T) {
		mockAuditService.On("QueryLogs", tmock.Anything, tmock.Anything, tmock.Anything, "", "").
			Return([]audit.AuditLog{{Operation: "terminate_employee", Confirmed: true, Timestamp: time.Now()}}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("QueryLogs_FilteredByOperation", func(t *testing.T) {
		mockAuditService.On("QueryLogs", tmock.Anything, tmock.Anything, tmock.Anything, "delete_team", "team").
			Return([]audit.AuditLog{}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit?operation=delete_team&entity_type=team", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("QueryLogs_BadTimestamp", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit?from=yesterday", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockAuditService.AssertExpectations(t)
}
