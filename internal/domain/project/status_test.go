package project

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCompleted, false},
		{StatusActive, StatusOnHold, true},
		{StatusOnHold, StatusActive, true},
		{StatusSuspended, StatusActive, true},
		{StatusExpired, StatusActive, true},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusArchived, true},
		{StatusArchived, StatusActive, false},
		{StatusActive, StatusActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEveryStatusHasTransitionEntry(t *testing.T) {
	for _, s := range AllStatuses {
		_, ok := transitions[s]
		assert.True(t, ok, "missing transitions for %s", s)
	}
	assert.Empty(t, NextStatuses(StatusArchived))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("On Hold"))
	assert.False(t, IsValidStatus("on hold"))
	assert.False(t, IsValidStatus(""))
}

func TestAvailableHours(t *testing.T) {
	p := Project{TotalHours: decimal.NewFromInt(100), UsedHours: decimal.RequireFromString("35.5")}
	assert.Equal(t, "64.5", p.AvailableHours().String())
}
