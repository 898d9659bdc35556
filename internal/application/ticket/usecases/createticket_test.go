package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	apperrors "storefix/internal/shared/errors"
	"storefix/internal/shared/services/markdown"
)

type stubNumberGenerator struct {
	number string
	err    error
}

func (s *stubNumberGenerator) Generate(ctx context.Context) (string, error) {
	return s.number, s.err
}

func TestCreateTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	newUseCase := func(repo *mockTicketRepository) *CreateTicketUseCase {
		return NewCreateTicketUseCase(repo,
			&stubNumberGenerator{number: "MT-20260830-0001"},
			markdown.NewMarkdownService(), &mockLogger{})
	}

	validCommand := func() CreateTicketCommand {
		return CreateTicketCommand{
			StoreID:     1,
			CreatorID:   testStoreUserID,
			Title:       "Broken freezer",
			Description: "The walk-in freezer stopped cooling overnight.",
			Category:    "equipment",
		}
	}

	t.Run("creates a draft owned by its creator", func(t *testing.T) {
		var saved *ticket.Ticket
		repo := &mockTicketRepository{
			SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
				require.NoError(t, tk.SetID(1))
				saved = tk
				return nil
			},
		}
		uc := newUseCase(repo)

		result, err := uc.Execute(ctx, validCommand())
		require.NoError(t, err)

		assert.Equal(t, uint(1), result.TicketID)
		assert.Equal(t, "MT-20260830-0001", result.Number)
		assert.Equal(t, vo.StatusDraft.String(), result.Status)
		require.NotNil(t, result.OwnerID)
		assert.Equal(t, testStoreUserID, *result.OwnerID)

		require.NotNil(t, saved)
		assert.Equal(t, saved.Description(), saved.OriginalDescription())
	})

	t.Run("strips embedded HTML from title and description", func(t *testing.T) {
		var saved *ticket.Ticket
		repo := &mockTicketRepository{
			SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
				require.NoError(t, tk.SetID(1))
				saved = tk
				return nil
			},
		}
		uc := newUseCase(repo)

		cmd := validCommand()
		cmd.Title = "Freezer <img src=x onerror=alert(1)> down"
		cmd.Description = "It <b>rattles</b> before it stops."

		_, err := uc.Execute(ctx, cmd)
		require.NoError(t, err)

		require.NotNil(t, saved)
		assert.NotContains(t, saved.Title(), "<img")
		assert.NotContains(t, saved.Description(), "<b>")
		assert.Contains(t, saved.Description(), "rattles")
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(cmd *CreateTicketCommand)
		}{
			{"missing store", func(cmd *CreateTicketCommand) { cmd.StoreID = 0 }},
			{"missing creator", func(cmd *CreateTicketCommand) { cmd.CreatorID = 0 }},
			{"empty title", func(cmd *CreateTicketCommand) { cmd.Title = "" }},
			{"title too long", func(cmd *CreateTicketCommand) { cmd.Title = strings.Repeat("x", 201) }},
			{"description too long", func(cmd *CreateTicketCommand) { cmd.Description = strings.Repeat("x", 5001) }},
			{"unknown category", func(cmd *CreateTicketCommand) { cmd.Category = "landscaping" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cmd := validCommand()
				tt.mutate(&cmd)

				uc := newUseCase(&mockTicketRepository{})
				_, err := uc.Execute(ctx, cmd)
				requireErrorType(t, err, apperrors.ErrorTypeValidation)
			})
		}
	})

	t.Run("number generator failure is an internal error", func(t *testing.T) {
		uc := NewCreateTicketUseCase(&mockTicketRepository{},
			&stubNumberGenerator{err: errRepoNotFound},
			markdown.NewMarkdownService(), &mockLogger{})

		_, err := uc.Execute(ctx, validCommand())
		requireErrorType(t, err, apperrors.ErrorTypeInternal)
	})
}
