package domaincheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRegistry("example.com", " Test.com ")

	taken, err := r.IsTaken(ctx, "EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, _ = r.IsTaken(ctx, "test.com")
	assert.True(t, taken)

	taken, _ = r.IsTaken(ctx, "acme.com")
	assert.False(t, taken)

	require.NoError(t, r.Add(ctx, "acme.com"))
	taken, _ = r.IsTaken(ctx, "acme.com")
	assert.True(t, taken)
}
