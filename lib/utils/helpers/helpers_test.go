package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
	require.True(t, IsContextDone(nil)) //nolint:staticcheck
}

func TestNormalizeEmails(t *testing.T) {
	require.Equal(t, []string{"hr@example.com", "ceo@example.com"},
		NormalizeEmails([]string{" HR@example.com", "", "ceo@example.com", "hr@example.com "}))
	require.Empty(t, NormalizeEmails(nil))
}
