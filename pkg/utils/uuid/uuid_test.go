package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	supplied := "3f2c8a4e-9b1d-4e6f-8a2b-1c3d5e7f9a0b"
	assert.Equal(t, supplied, RequestID(supplied))

	for _, in := range []string{"", "not-a-uuid"} {
		got := RequestID(in)
		_, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.NotEqual(t, in, got)
	}
}
