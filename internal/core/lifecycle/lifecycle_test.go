package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInitialExpiry(t *testing.T) {
	assert.Equal(t, t0.Add(24*time.Hour), InitialExpiry(KindPost, t0))
	assert.Equal(t, t0.Add(7*24*time.Hour), InitialExpiry(KindComment, t0))
}

func TestApplyUpvoteExtends(t *testing.T) {
	expires := InitialExpiry(KindComment, t0)

	got := ApplyUpvote(expires, t0)

	assert.Equal(t, expires.Add(6*time.Hour), got)
}

func TestApplyUpvoteCappedAtMaxLifetime(t *testing.T) {
	expires := InitialExpiry(KindComment, t0)

	// 100 upvote events would extend 7d by 600h; the cap wins.
	for i := 0; i < 100; i++ {
		expires = ApplyUpvote(expires, t0)
	}

	assert.Equal(t, t0.Add(30*24*time.Hour), expires)

	// Further upvotes stay pinned at the cap.
	assert.Equal(t, t0.Add(30*24*time.Hour), ApplyUpvote(expires, t0))
}

func TestApplyDownvote(t *testing.T) {
	assert.False(t, ApplyDownvote(0))
	assert.False(t, ApplyDownvote(4))
	assert.True(t, ApplyDownvote(5))
	assert.True(t, ApplyDownvote(6))
}

func TestShouldReap(t *testing.T) {
	expires := t0.Add(24 * time.Hour)

	tests := []struct {
		name string
		e    Expirable
		now  time.Time
		want bool
	}{
		{"live before expiry", Expirable{ExpiresAt: expires}, expires.Add(-time.Second), false},
		{"exactly at expiry", Expirable{ExpiresAt: expires}, expires, true},
		{"past expiry", Expirable{ExpiresAt: expires}, expires.Add(time.Second), true},
		{"already soft-deleted", Expirable{ExpiresAt: expires, SoftDeleted: true}, expires.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldReap(tt.e, tt.now))
		})
	}
}
