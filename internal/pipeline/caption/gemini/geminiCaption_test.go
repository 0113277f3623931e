package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_OutlivesConstructionContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c, err := NewClient(ctx, "test-key")
	require.NoError(t, err)
	cancel()

	// the client is shared for the whole process, cancelling ctx must leave it usable
	require.NotNil(t, c)
	assert.NotNil(t, NewCaptionModel(c, "gemini-test"))
}
