package request

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusDenied))
	assert.False(t, IsTerminal(StatusRevisionRequested))

	assert.True(t, EngineerMayEnter(StatusReadyForReview))
	assert.False(t, EngineerMayEnter(StatusCompleted))

	assert.True(t, InReview(StatusDiscussion))
	assert.False(t, InReview(StatusInProgress))

	assert.True(t, IsValidStatus("Ready for Review"))
	assert.False(t, IsValidStatus("Closed"))

	assert.True(t, IsValidPriority("High"))
	assert.False(t, IsValidPriority("high"))
	assert.False(t, IsValidPriority("Urgent"))
}

func TestHasLedgerLink(t *testing.T) {
	pid := uuid.New()
	r := Request{AllocatedHours: decimal.NewFromInt(4)}
	assert.False(t, r.HasLedgerLink())

	r.ProjectID = &pid
	assert.True(t, r.HasLedgerLink())

	r.AllocatedHours = decimal.Zero
	assert.False(t, r.HasLedgerLink())
}
