package adminController

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The binding layer must reject malformed approval requests before any
// database work happens, so a nil DB proves the handler never got that far.
func postApproval(t *testing.T, handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApproveAdminRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing email", `{"name":"someone"}`},
		{"blank email", `{"email":""}`},
		{"not an email", `{"email":"not-an-address"}`},
		{"malformed json", `{"email":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postApproval(t, ApproveAdmin(nil), "/admin/admin-management/approve", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid input")
		})
	}
}

func TestRejectAdminRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"blank email", `{"email":""}`},
		{"not an email", `{"email":"stillnotanaddress"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postApproval(t, RejectAdmin(nil), "/admin/admin-management/reject", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid input")
		})
	}
}
