package pgsql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemberDayLockKey_SameSlotSameKey(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	key := memberDayLockKey("dept-1", "TM-7", date)

	assert.Equal(t, key, memberDayLockKey("dept-1", "TM-7", date))
	// The key is per calendar day, not per instant.
	assert.Equal(t, key, memberDayLockKey("dept-1", "TM-7", date.Add(4*time.Hour)))
}

func TestMemberDayLockKey_DifferentSlotsDifferentKeys(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	key := memberDayLockKey("dept-1", "TM-7", date)

	assert.NotEqual(t, key, memberDayLockKey("dept-1", "TM-7", date.AddDate(0, 0, 1)))
	assert.NotEqual(t, key, memberDayLockKey("dept-1", "TM-8", date))
	assert.NotEqual(t, key, memberDayLockKey("dept-2", "TM-7", date))
}
