package ticket

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "storefix/internal/domain/ticket/valueobjects"
)

func newTestTicket(t *testing.T, status vo.TicketStatus, ownerID *uint) *Ticket {
	t.Helper()
	tk, err := ReconstructTicket(
		1, "MT-20260101-0001", 10, 7,
		"Broken freezer", "The freezer in aisle 3 stopped cooling.",
		"The freezer in aisle 3 stopped cooling.",
		vo.CategoryEquipment, false, status, ownerID, nil, nil, false, 1,
		time.Now().Add(-time.Hour), time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	return tk
}

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name        string
		storeID     uint
		creatorID   uint
		title       string
		description string
		category    vo.Category
		wantErr     string
	}{
		{
			name: "valid", storeID: 10, creatorID: 7,
			title: "Leaking pipe", description: "Water under the sink.",
			category: vo.CategoryPlumbing,
		},
		{
			name: "missing store", storeID: 0, creatorID: 7,
			title: "x", description: "y", category: vo.CategoryOther,
			wantErr: "store ID is required",
		},
		{
			name: "missing creator", storeID: 10, creatorID: 0,
			title: "x", description: "y", category: vo.CategoryOther,
			wantErr: "creator ID is required",
		},
		{
			name: "missing title", storeID: 10, creatorID: 7,
			title: "", description: "y", category: vo.CategoryOther,
			wantErr: "title is required",
		},
		{
			name: "description too long", storeID: 10, creatorID: 7,
			title: "x", description: strings.Repeat("a", 5001), category: vo.CategoryOther,
			wantErr: "description exceeds maximum length",
		},
		{
			name: "invalid category", storeID: 10, creatorID: 7,
			title: "x", description: "y", category: vo.Category("bogus"),
			wantErr: "invalid category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.storeID, tt.creatorID, tt.title, tt.description, tt.category, false, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusDraft, tk.Status())
			require.NotNil(t, tk.OwnerID())
			assert.Equal(t, tt.creatorID, *tk.OwnerID())
			assert.Equal(t, tt.description, tk.OriginalDescription())
			assert.Equal(t, 1, tk.Version())
		})
	}
}

func TestTicket_ApplyTransition(t *testing.T) {
	owner := uint(7)
	tk := newTestTicket(t, vo.StatusDraft, &owner)

	newOwner := uint(30)
	require.NoError(t, tk.ApplyTransition(vo.StatusSubmitted, &newOwner))
	assert.Equal(t, vo.StatusSubmitted, tk.Status())
	assert.Equal(t, newOwner, *tk.OwnerID())
	assert.Equal(t, 2, tk.Version())

	assert.Error(t, tk.ApplyTransition(vo.TicketStatus("bogus"), nil))
}

func TestTicket_ApplyTransition_TerminalIsFinal(t *testing.T) {
	tk := newTestTicket(t, vo.StatusRejected, nil)

	err := tk.ApplyTransition(vo.StatusSubmitted, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestTicket_ArchiveSetsFlagAndClearsOwner(t *testing.T) {
	owner := uint(30)
	tk := newTestTicket(t, vo.StatusCostEstimationApproved, &owner)

	require.NoError(t, tk.ApplyTransition(vo.StatusArchived, nil))
	assert.True(t, tk.Archived())
	assert.Nil(t, tk.OwnerID())
}

func TestTicket_ClarificationRoundTracking(t *testing.T) {
	owner := uint(7)
	tk := newTestTicket(t, vo.StatusSubmitted, &owner)

	_, err := tk.EndClarification()
	require.Error(t, err)

	require.NoError(t, tk.BeginClarification(21))
	requester, err := tk.EndClarification()
	require.NoError(t, err)
	assert.Equal(t, uint(21), requester)

	// Consumed: a second response has nobody to route to.
	_, err = tk.EndClarification()
	require.Error(t, err)
}

func TestTicket_AmendDescriptionKeepsOriginal(t *testing.T) {
	owner := uint(7)
	tk := newTestTicket(t, vo.StatusAwaitingCreatorResponse, &owner)
	original := tk.OriginalDescription()

	require.NoError(t, tk.AmendDescription("It also makes a loud noise now."))
	assert.Equal(t, "It also makes a loud noise now.", tk.Description())
	assert.Equal(t, original, tk.OriginalDescription())
}

func TestDefaultNumberGenerator(t *testing.T) {
	g := NewDefaultNumberGenerator()

	first, err := g.Generate(context.Background())
	require.NoError(t, err)
	second, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "MT-"))
	assert.NotEqual(t, first, second)
}
