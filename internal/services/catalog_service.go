// Package services – CatalogService
//
// This file implements the dog catalog: validated creation (single, bulk and
// idempotent bulk), lookup, paginated listing, listing by the caller's ledger
// status and the breed backfill used by fixture seeding.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/observability"
	"github.com/tbourn/pugorugh-backend/internal/repo"
)

// DogRepo defines the repository contract required by CatalogService and
// Selector.
type DogRepo interface {
	CreateDogs(ctx context.Context, db *gorm.DB, dogs []domain.Dog) error
	GetDog(ctx context.Context, db *gorm.DB, id int64) (*domain.Dog, error)
	DogExists(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	CountDogs(ctx context.Context, db *gorm.DB) (int64, error)
	ListDogsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Dog, error)
	ListDogsByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Dog, error)
	UpdateBreedByName(ctx context.Context, db *gorm.DB, name, breed string) (int64, error)
	CountDogsByStatus(ctx context.Context, db *gorm.DB, userID int64, st domain.Status) (int64, error)
	ListDogsByStatusPage(ctx context.Context, db *gorm.DB, userID int64, st domain.Status, offset, limit int) ([]domain.Dog, error)
	FindNextDog(ctx context.Context, db *gorm.DB, q repo.NextDogQuery) (*domain.Dog, error)
	ListUnseenDogIDs(ctx context.Context, db *gorm.DB, userID int64) ([]int64, error)
}

// NewDog holds the fields of a dog to be created.
type NewDog struct {
	Name          string
	ImageFilename string
	Breed         string
	Age           int
	Gender        string
	Size          string
}

// Validate checks required fields and code membership.
func (n NewDog) Validate() error {
	switch {
	case strings.TrimSpace(n.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidDog)
	case strings.TrimSpace(n.ImageFilename) == "":
		return fmt.Errorf("%w: image_filename is required", ErrInvalidDog)
	case n.Age < 0:
		return fmt.Errorf("%w: age must be >= 0", ErrInvalidDog)
	case !domain.ValidCode(n.Gender, domain.GenderCodes):
		return fmt.Errorf("%w: gender %q is not one of %s", ErrInvalidDog, n.Gender, strings.Join(domain.GenderCodes, ", "))
	case !domain.ValidCode(n.Size, domain.SizeCodes):
		return fmt.Errorf("%w: size %q is not one of %s", ErrInvalidDog, n.Size, strings.Join(domain.SizeCodes, ", "))
	}
	return nil
}

func (n NewDog) model() domain.Dog {
	return domain.Dog{
		Name:          strings.TrimSpace(n.Name),
		ImageFilename: strings.TrimSpace(n.ImageFilename),
		Breed:         strings.TrimSpace(n.Breed),
		Age:           n.Age,
		Gender:        strings.ToLower(strings.TrimSpace(n.Gender)),
		Size:          strings.ToLower(strings.TrimSpace(n.Size)),
	}
}

// CatalogService manages the dog catalog.
type CatalogService struct {
	DB   *gorm.DB
	Repo DogRepo

	// IdempotencyTTL bounds how long a bulk-create key is replayable.
	IdempotencyTTL time.Duration
}

// NewCatalogService constructs a CatalogService with a 24h idempotency window.
func NewCatalogService(db *gorm.DB, r DogRepo) *CatalogService {
	return &CatalogService{DB: db, Repo: r, IdempotencyTTL: 24 * time.Hour}
}

// Create validates and inserts one dog.
func (s *CatalogService) Create(ctx context.Context, in NewDog) (*domain.Dog, error) {
	dogs, err := s.CreateMany(ctx, []NewDog{in})
	if err != nil {
		return nil, err
	}
	return &dogs[0], nil
}

// CreateMany validates every dog and inserts them in one transaction, in
// input order, so ids follow the input order.
func (s *CatalogService) CreateMany(ctx context.Context, in []NewDog) ([]domain.Dog, error) {
	ctx, span := otel.Tracer("services/CatalogService").Start(ctx, "CreateMany",
		trace.WithAttributes(attribute.Int("dogs.count", len(in))),
	)
	defer span.End()

	dogs := make([]domain.Dog, 0, len(in))
	for i, d := range in {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("dog %d: %w", i, err)
		}
		dogs = append(dogs, d.model())
	}
	if len(dogs) == 0 {
		return dogs, nil
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Repo.CreateDogs(ctx, tx, dogs)
	})
	if err != nil {
		return nil, err
	}
	observability.DogsCreated.Add(float64(len(dogs)))
	return dogs, nil
}

// CreateManyIdempotent behaves like CreateMany, but when key is non-empty a
// retry with the same (user, scope, key) inside the TTL returns the dogs of
// the first call with replayed=true instead of inserting again.
func (s *CatalogService) CreateManyIdempotent(ctx context.Context, userID int64, scope, key string, in []NewDog) (dogs []domain.Dog, replayed bool, err error) {
	if key != "" {
		if rec, gerr := repo.GetIdempotency(ctx, s.DB, userID, scope, key, time.Now().UTC()); gerr == nil {
			prev, lerr := s.Repo.ListDogsByIDs(ctx, s.DB, rec.ParseIDs())
			if lerr != nil {
				return nil, false, lerr
			}
			return prev, true, nil
		}
	}

	dogs, err = s.CreateMany(ctx, in)
	if err != nil || key == "" {
		return dogs, false, err
	}

	ids := make([]int64, len(dogs))
	for i := range dogs {
		ids[i] = dogs[i].ID
	}
	// Best effort: a racing request with the same key wins the record.
	if _, cerr := repo.CreateIdempotency(ctx, s.DB, userID, scope, key, ids, 201, time.Now().UTC(), s.IdempotencyTTL); cerr != nil && !errors.Is(cerr, repo.ErrDuplicate) {
		log.Warn().Err(cerr).Int64("user_id", userID).Str("scope", scope).Msg("store idempotency record")
	}
	return dogs, false, nil
}

// Get returns a dog by id or ErrDogNotFound.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Dog, error) {
	d, err := s.Repo.GetDog(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrDogNotFound
	}
	return d, err
}

// ListPage returns a page of the catalog ordered by id and the total count.
func (s *CatalogService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Dog, int64, error) {
	ctx, span := otel.Tracer("services/CatalogService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	page, pageSize = normalizePage(page, pageSize)

	total, err := s.Repo.CountDogs(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Dog{}, 0, nil
	}
	items, err := s.Repo.ListDogsPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	return items, total, err
}

// ListByStatus returns a page of the dogs whose ledger row for userID has
// status st, plus the total count.
func (s *CatalogService) ListByStatus(ctx context.Context, userID int64, st domain.Status, page, pageSize int) ([]domain.Dog, int64, error) {
	ctx, span := otel.Tracer("services/CatalogService").Start(ctx, "ListByStatus",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("status", st.String()),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if st == domain.StatusUnset {
		return nil, 0, ErrInvalidStatus
	}
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.Repo.CountDogsByStatus(ctx, s.DB, userID, st)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Dog{}, 0, nil
	}
	items, err := s.Repo.ListDogsByStatusPage(ctx, s.DB, userID, st, (page-1)*pageSize, pageSize)
	return items, total, err
}

// UpdateBreed sets breed on every dog named exactly name and returns the
// number of dogs changed. No match is not an error.
func (s *CatalogService) UpdateBreed(ctx context.Context, name, breed string) (int64, error) {
	return s.Repo.UpdateBreedByName(ctx, s.DB, strings.TrimSpace(name), strings.TrimSpace(breed))
}

// Count returns the catalog size.
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	return s.Repo.CountDogs(ctx, s.DB)
}

// Version returns the catalog size and the latest update time; together
// they change whenever the listing does.
func (s *CatalogService) Version(ctx context.Context) (int64, *time.Time, error) {
	return repo.DogsStats(ctx, s.DB)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}
