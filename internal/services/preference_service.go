// Package services – PreferenceService
//
// This file implements the per-user discovery preference: a lazily created
// row holding three code sets (gender, size, age stage). Reads never fail for
// a user without a row; writes replace all three sets at once after
// validating every code.
package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// PreferenceRepo defines the repository contract required by PreferenceService.
type PreferenceRepo interface {
	// GetOrCreatePreference returns the user's row, inserting an empty one
	// when missing.
	GetOrCreatePreference(ctx context.Context, db *gorm.DB, userID int64) (*domain.Preference, error)

	// ReplacePreference overwrites the three code sets of an existing row.
	ReplacePreference(ctx context.Context, db *gorm.DB, userID int64, gender, size, age string) error
}

// PreferenceUpdate carries the three comma-joined code sets of a full
// preference replacement. Empty strings are legal and match no dog.
type PreferenceUpdate struct {
	Gender string
	Size   string
	Age    string
}

// PreferenceService reads and replaces user preferences.
type PreferenceService struct {
	DB   *gorm.DB
	Repo PreferenceRepo
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(db *gorm.DB, r PreferenceRepo) *PreferenceService {
	return &PreferenceService{DB: db, Repo: r}
}

// Get returns the user's preference, creating an empty one on first access.
func (s *PreferenceService) Get(ctx context.Context, userID int64) (*domain.Preference, error) {
	ctx, span := otel.Tracer("services/PreferenceService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	defer span.End()

	return s.Repo.GetOrCreatePreference(ctx, s.DB, userID)
}

// Update validates and replaces all three sets. Codes are case-insensitive;
// duplicates collapse. A code outside its set yields ErrInvalidPreference
// and leaves the stored row untouched.
func (s *PreferenceService) Update(ctx context.Context, userID int64, in PreferenceUpdate) (*domain.Preference, error) {
	ctx, span := otel.Tracer("services/PreferenceService").Start(ctx, "Update",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("pref.gender", in.Gender),
			attribute.String("pref.size", in.Size),
			attribute.String("pref.age", in.Age),
		),
	)
	defer span.End()

	gender, err := domain.NormalizeCodes("gender", in.Gender, domain.GenderCodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreference, err)
	}
	size, err := domain.NormalizeCodes("size", in.Size, domain.SizeCodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreference, err)
	}
	age, err := domain.NormalizeCodes("age", in.Age, domain.AgeCodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreference, err)
	}

	var out *domain.Preference
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetOrCreatePreference(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.Repo.ReplacePreference(ctx, tx, userID, gender, size, age); err != nil {
			return err
		}
		p, err := s.Repo.GetOrCreatePreference(ctx, tx, userID)
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
