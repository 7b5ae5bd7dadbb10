// Package services – StatusService
//
// This file implements the status updater: it records a user's decision
// about a dog in the interaction ledger with last-write-wins semantics.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/observability"
)

// StatusService updates ledger rows.
type StatusService struct {
	DB     *gorm.DB
	Dogs   DogRepo
	Ledger LedgerRepo
}

// NewStatusService constructs a StatusService.
func NewStatusService(db *gorm.DB, dogs DogRepo, ledger LedgerRepo) *StatusService {
	return &StatusService{DB: db, Dogs: dogs, Ledger: ledger}
}

// Set parses word (liked, disliked or undecided) and stores it as the user's
// status for dogID. Undecided resets the row to NULL. Repeating a call is a
// no-op.
//
// Errors: ErrInvalidStatus for an unknown word, ErrDogNotFound when the dog
// does not exist.
func (s *StatusService) Set(ctx context.Context, userID, dogID int64, word string) (*domain.Interaction, error) {
	ctx, span := otel.Tracer("services/StatusService").Start(ctx, "Set",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.Int64("dog.id", dogID),
			attribute.String("status", word),
		),
	)
	defer span.End()

	st, err := domain.ParseStatusWord(word)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	ok, err := s.Dogs.DogExists(ctx, s.DB, dogID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDogNotFound
	}

	row, err := s.Ledger.UpsertInteraction(ctx, s.DB, userID, dogID, st)
	if err != nil {
		return nil, err
	}
	observability.StatusUpdates.WithLabelValues(st.Word()).Inc()
	return row, nil
}
