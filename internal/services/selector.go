// Package services – Selector
//
// This file implements next-dog selection. Given a user, a Filter and a
// cursor it returns the lowest-id dog after the cursor whose ledger row for
// the user has the requested status, optionally restricted to dogs matching
// the user's preference.
//
// Selection runs in two phases:
//   - FindNext is read-only with respect to the ledger.
//   - SeedUnseen materializes an undecided row for every dog the user has
//     never been shown. It runs only when FindNext comes back empty, and
//     FindNext is retried once when it inserted anything.
//
// Concurrent calls for the same user may race in SeedUnseen; losing inserts
// hit the unique (user, dog) index and are treated as already seeded.
package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/observability"
	"github.com/tbourn/pugorugh-backend/internal/repo"
)

// LedgerRepo defines the interaction ledger contract used by Selector and
// StatusService.
type LedgerRepo interface {
	InsertInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64, st domain.Status) (*domain.Interaction, error)
	UpsertInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64, st domain.Status) (*domain.Interaction, error)
	GetInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64) (*domain.Interaction, error)
}

// Filter selects which ledger rows qualify for next-dog selection.
type Filter struct {
	Status        domain.Status
	UsePreference bool
}

// FilterDiscover is the swipe feed: undecided dogs matching the user's
// preference.
var FilterDiscover = Filter{Status: domain.StatusUndecided, UsePreference: true}

// Mode names the filter for metrics and logs.
func (f Filter) Mode() string {
	if f.UsePreference {
		return "discover"
	}
	return f.Status.String()
}

// FilterForWord maps a status word to an unrestricted Filter. The empty word
// selects FilterDiscover.
func FilterForWord(word string) (Filter, error) {
	if word == "" {
		return FilterDiscover, nil
	}
	st, err := domain.ParseStatusWord(word)
	if err != nil {
		return Filter{}, ErrInvalidStatus
	}
	return Filter{Status: st}, nil
}

// Selector picks the next dog for a user.
type Selector struct {
	DB     *gorm.DB
	Dogs   DogRepo
	Ledger LedgerRepo
	Prefs  PreferenceRepo
}

// NewSelector constructs a Selector.
func NewSelector(db *gorm.DB, dogs DogRepo, ledger LedgerRepo, prefs PreferenceRepo) *Selector {
	return &Selector{DB: db, Dogs: dogs, Ledger: ledger, Prefs: prefs}
}

// Next returns the next dog after cursor satisfying f, seeding undecided
// rows for unseen dogs when nothing qualifies. It returns ErrNoDogFound when
// no dog qualifies even after seeding. The result always has ID > cursor.
func (s *Selector) Next(ctx context.Context, userID int64, f Filter, cursor int64) (*domain.Dog, error) {
	ctx, span := otel.Tracer("services/Selector").Start(ctx, "Next",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("filter.mode", f.Mode()),
			attribute.Int64("cursor", cursor),
		),
	)
	defer span.End()

	if f.Status == domain.StatusUnset {
		return nil, ErrInvalidStatus
	}

	pref, err := s.preference(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	d, err := s.findNext(ctx, userID, f, cursor, pref)
	if err == nil {
		observability.NextDogLookups.WithLabelValues(f.Mode(), "hit").Inc()
		return d, nil
	}
	if !errors.Is(err, ErrNoDogFound) {
		return nil, err
	}

	seeded, err := s.SeedUnseen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if seeded > 0 {
		d, err = s.findNext(ctx, userID, f, cursor, pref)
		if err == nil {
			observability.NextDogLookups.WithLabelValues(f.Mode(), "seeded_hit").Inc()
			return d, nil
		}
		if !errors.Is(err, ErrNoDogFound) {
			return nil, err
		}
	}

	observability.NextDogLookups.WithLabelValues(f.Mode(), "miss").Inc()
	span.SetAttributes(attribute.Bool("result.found", false))
	return nil, ErrNoDogFound
}

// FindNext is the read-only phase of Next. It returns ErrNoDogFound when no
// existing ledger row qualifies.
func (s *Selector) FindNext(ctx context.Context, userID int64, f Filter, cursor int64) (*domain.Dog, error) {
	if f.Status == domain.StatusUnset {
		return nil, ErrInvalidStatus
	}
	pref, err := s.preference(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return s.findNext(ctx, userID, f, cursor, pref)
}

func (s *Selector) findNext(ctx context.Context, userID int64, f Filter, cursor int64, pref *domain.Preference) (*domain.Dog, error) {
	d, err := s.Dogs.FindNextDog(ctx, s.DB, repo.NextDogQuery{
		UserID:     userID,
		Status:     f.Status,
		Cursor:     cursor,
		Preference: pref,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoDogFound
	}
	return d, err
}

func (s *Selector) preference(ctx context.Context, userID int64, f Filter) (*domain.Preference, error) {
	if !f.UsePreference {
		return nil, nil
	}
	return s.Prefs.GetOrCreatePreference(ctx, s.DB, userID)
}

// SeedUnseen inserts an undecided ledger row for every dog with no row for
// the user, in id order, and returns how many rows this call created.
func (s *Selector) SeedUnseen(ctx context.Context, userID int64) (int, error) {
	ctx, span := otel.Tracer("services/Selector").Start(ctx, "SeedUnseen",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	defer span.End()

	ids, err := s.Dogs.ListUnseenDogIDs(ctx, s.DB, userID)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, dogID := range ids {
		_, err := s.Ledger.InsertInteraction(ctx, s.DB, userID, dogID, domain.StatusUndecided)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, repo.ErrDuplicate):
			// A concurrent request seeded or rated this dog first.
		default:
			return inserted, err
		}
	}

	span.SetAttributes(attribute.Int("seeded", inserted))
	if inserted > 0 {
		observability.SeededInteractions.Add(float64(inserted))
		log.Debug().Int64("user_id", userID).Int("seeded", inserted).Msg("seeded undecided interactions")
	}
	return inserted, nil
}
