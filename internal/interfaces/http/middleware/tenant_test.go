package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galerie/internal/domain/tenant"
	"galerie/internal/shared/logger"
	"galerie/internal/shared/tenantctx"
)

type mapDirectory map[string]*tenant.Tenant

func (d mapDirectory) FindByHost(ctx context.Context, host string) (*tenant.Tenant, error) {
	return d[host], nil
}

func (d mapDirectory) List(ctx context.Context) ([]*tenant.Tenant, error) { return nil, nil }

func (d mapDirectory) Create(ctx context.Context, t *tenant.Tenant) error { return nil }

func TestTenantMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	directory := mapDirectory{
		"artist5.example.com": {ID: 5, Host: "artist5.example.com"},
	}
	resolver := tenant.NewResolver(directory, logger.NewLogger())

	router := gin.New()
	router.Use(Tenant(resolver))
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"gin_tenant": TenantID(c),
			"ctx_tenant": tenantctx.FromContext(c.Request.Context()),
		})
	})

	t.Run("mapped host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Host = "artist5.example.com:443"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"gin_tenant":5,"ctx_tenant":5}`, w.Body.String())
	})

	t.Run("unmapped host resolves to default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Host = "stranger.example.org"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"gin_tenant":1,"ctx_tenant":1}`, w.Body.String())
	})
}
