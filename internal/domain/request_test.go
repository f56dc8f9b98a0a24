package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want RequestStatus
	}{
		{"PENDING", RequestStatusPending},
		{"pending", RequestStatusPending},
		{" Approved ", RequestStatusApproved},
		{"REJECTED", RequestStatusRejected},
		{"rejected", RequestStatusRejected},
		// Legacy clients send the bare verb.
		{"reject", RequestStatusRejected},
		{"REJECT", RequestStatusRejected},
	}
	for _, tc := range cases {
		got, err := ParseRequestStatus(tc.raw)
		require.NoError(t, err, "input %q", tc.raw)
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
	}
}

func TestParseRequestStatusInvalid(t *testing.T) {
	for _, raw := range []string{"", "approvedd", "done", "0"} {
		_, err := ParseRequestStatus(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.Terminal())
	assert.True(t, RequestStatusApproved.Terminal())
	assert.True(t, RequestStatusRejected.Terminal())
}
