package engine

import (
	"testing"

	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBatch_DailyCapAccumulates(t *testing.T) {
	b := NewBatch(MustValidator(DefaultRules()), ongoing, nil)

	assert.NoError(t, b.Admit(entry("P1", "2025-05-26", 3.8)))
	assert.NoError(t, b.Admit(entry("P2", "2025-05-26", 3.8)))
	assert.ErrorIs(t, b.Admit(entry("P1", "2025-05-26", 1.9)), ErrDailyCapExceeded)

	assert.Equal(t, 7.6, b.LoggedHours("E1", day("2025-05-26")))
}

func TestBatch_SeededFromStorage(t *testing.T) {
	stored := []*domain.TimesheetEntry{entry("P1", "2025-05-26", 5.7)}
	b := NewBatch(MustValidator(DefaultRules()), ongoing, stored)

	assert.NoError(t, b.Admit(entry("P2", "2025-05-26", 1.9)))
	assert.ErrorIs(t, b.Admit(entry("P1", "2025-05-26", 1.9)), ErrDailyCapExceeded)
	assert.NoError(t, b.Admit(entry("P1", "2025-05-27", 7.6)))
}

func TestBatch_DuplicateWithinBatch(t *testing.T) {
	b := NewBatch(MustValidator(DefaultRules()), ongoing, nil)

	assert.NoError(t, b.Admit(entry("P1", "2025-05-26", 3.8)))
	assert.ErrorIs(t, b.Admit(entry("P1", "2025-05-26", 3.8)), ErrDuplicateEntry)
}

func TestBatch_ScreenDoesNotRecord(t *testing.T) {
	b := NewBatch(MustValidator(DefaultRules()), ongoing, nil)

	assert.NoError(t, b.Screen(entry("P1", "2025-05-26", 7.6)))
	assert.NoError(t, b.Screen(entry("P2", "2025-05-26", 7.6)))
	assert.Zero(t, b.LoggedHours("E1", day("2025-05-26")))
}

func TestBatch_RejectedEntriesDoNotCount(t *testing.T) {
	b := NewBatch(MustValidator(DefaultRules()), ongoing, nil)

	assert.ErrorIs(t, b.Admit(entry("P1", "2025-05-26", 2.0)), ErrInvalidIncrement)
	assert.NoError(t, b.Admit(entry("P1", "2025-05-26", 7.6)))
}
