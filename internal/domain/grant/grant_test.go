package grant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testGrant(firstAccess *time.Time, minutes int) *AccessGrant {
	g := &AccessGrant{
		ID:                    uuid.New(),
		OwnerID:               uuid.New(),
		Recipients:            []string{"bob@example.com", "charlie@example.com"},
		AccessCode:            "482913",
		Status:                StatusUploaded,
		ExpiryDurationMinutes: minutes,
		FirstAccessedAt:       firstAccess,
	}
	if firstAccess != nil {
		deadline := firstAccess.Add(time.Duration(minutes) * time.Minute)
		g.ExpiresAt = &deadline
		g.Status = StatusActive
	}
	return g
}

func TestIsExpired_NeverAccessed(t *testing.T) {
	g := testGrant(nil, 2)

	// Upload time is irrelevant; the countdown only starts on first access.
	assert.False(t, g.IsExpired(time.Now().Add(100*time.Hour)))
}

func TestIsExpired_Boundary(t *testing.T) {
	first := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	g := testGrant(&first, 2)

	assert.False(t, g.IsExpired(first.Add(2*time.Minute-time.Second)))
	// Exactly at the deadline counts as expired (closed interval).
	assert.True(t, g.IsExpired(first.Add(2*time.Minute)))
	assert.True(t, g.IsExpired(first.Add(3*time.Minute)))
}

func TestMinutesRemaining(t *testing.T) {
	first := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	g := testGrant(&first, 2)

	m, ok := g.MinutesRemaining(first)
	assert.True(t, ok)
	assert.Equal(t, 2, m)

	// 30 seconds in: 90s remain, rounded up to 2 minutes.
	m, ok = g.MinutesRemaining(first.Add(30 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, 2, m)

	// 61 seconds in: 59s remain, rounded up to 1 minute.
	m, ok = g.MinutesRemaining(first.Add(61 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, 1, m)

	m, ok = g.MinutesRemaining(first.Add(5 * time.Minute))
	assert.True(t, ok)
	assert.Equal(t, 0, m)
}

func TestMinutesRemaining_BeforeFirstAccess(t *testing.T) {
	g := testGrant(nil, 2)

	_, ok := g.MinutesRemaining(time.Now())
	assert.False(t, ok)
}

func TestDeadlineAt_DerivedWhenColumnUnset(t *testing.T) {
	first := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	g := testGrant(&first, 5)
	g.ExpiresAt = nil

	deadline, ok := g.DeadlineAt()
	assert.True(t, ok)
	assert.Equal(t, first.Add(5*time.Minute), deadline)
}

func TestIsRecipient(t *testing.T) {
	g := testGrant(nil, 2)

	assert.True(t, g.IsRecipient("bob@example.com"))
	assert.True(t, g.IsRecipient("BOB@Example.COM"))
	assert.False(t, g.IsRecipient("eve@example.com"))
}
