package tenantctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := WithTenantID(context.Background(), 42)
		assert.Equal(t, uint(42), FromContext(ctx))
	})

	t.Run("missing value yields default", func(t *testing.T) {
		assert.Equal(t, DefaultTenantID, FromContext(context.Background()))
	})

	t.Run("nil context yields default", func(t *testing.T) {
		assert.Equal(t, DefaultTenantID, FromContext(nil)) //nolint:staticcheck
	})

	t.Run("zero tenant id yields default", func(t *testing.T) {
		ctx := WithTenantID(context.Background(), 0)
		assert.Equal(t, DefaultTenantID, FromContext(ctx))
	})
}
