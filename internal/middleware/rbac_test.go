package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/schoolworks/campus-api/internal/models"
)

func rbacRouter(claims *models.JWTClaims, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	})
	r.GET("/records/:studentId", RBAC(allowed...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func perform(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRBACAllowsListedRole(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}
	resp := perform(rbacRouter(claims, "ADMIN"), "/records/s1")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRBACRejectsUnlistedRole(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher}
	resp := perform(rbacRouter(claims, "ADMIN"), "/records/s1")
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRBACRejectsMissingClaims(t *testing.T) {
	resp := perform(rbacRouter(nil, "ADMIN"), "/records/s1")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRBACSelfMatchesOwnRecord(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent, PersonID: "s1"}
	resp := perform(rbacRouter(claims, "ADMIN", "SELF"), "/records/s1")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRBACSelfRejectsForeignRecord(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent, PersonID: "s1"}
	resp := perform(rbacRouter(claims, "ADMIN", "SELF"), "/records/s2")
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRBACSelfRequiresDirectoryLink(t *testing.T) {
	// An account without a directory record can never match SELF.
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	resp := perform(rbacRouter(claims, "ADMIN", "SELF"), "/records/s1")
	require.Equal(t, http.StatusForbidden, resp.Code)
}
