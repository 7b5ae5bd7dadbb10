// Package handlers implements the public JSON API: accounts, preferences,
// dog status updates, next-dog selection and the catalog listings.
//
// Handlers are transport-thin. They bind and validate input, call a service
// through the narrow interfaces below and translate results and service
// errors into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/http/middleware"
	"github.com/tbourn/pugorugh-backend/internal/services"
	"github.com/tbourn/pugorugh-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService registers accounts and issues API tokens.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// PreferenceService reads and replaces a user's discovery preference.
type PreferenceService interface {
	Get(ctx context.Context, userID int64) (*domain.Preference, error)
	Update(ctx context.Context, userID int64, in services.PreferenceUpdate) (*domain.Preference, error)
}

// CatalogService exposes the dog catalog.
type CatalogService interface {
	CreateManyIdempotent(ctx context.Context, userID int64, scope, key string, in []services.NewDog) ([]domain.Dog, bool, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Dog, int64, error)
	ListByStatus(ctx context.Context, userID int64, st domain.Status, page, pageSize int) ([]domain.Dog, int64, error)
	// Version returns values that change whenever the catalog listing does.
	Version(ctx context.Context) (int64, *time.Time, error)
}

// Selector picks the next dog for a user.
type Selector interface {
	Next(ctx context.Context, userID int64, f services.Filter, cursor int64) (*domain.Dog, error)
}

// StatusService records a user's decision about a dog.
type StatusService interface {
	Set(ctx context.Context, userID, dogID int64, word string) (*domain.Interaction, error)
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	users    UserService
	prefs    PreferenceService
	catalog  CatalogService
	selector Selector
	status   StatusService
}

// New constructs a Handlers bound to the given services.
func New(users UserService, prefs PreferenceService, catalog CatalogService, sel Selector, status StatusService) *Handlers {
	return &Handlers{users: users, prefs: prefs, catalog: catalog, selector: sel, status: status}
}

// currentUser returns the id stored by middleware.Auth. Routes that call it
// are always mounted behind Auth; the 401 covers misconfigured wiring.
func currentUser(c *gin.Context) (int64, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication credentials were not provided")
	}
	return uid, ok
}

//
// Pagination
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	pages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
	}
}

// clampPagination parses page and page_size, defaulting to 1 and 20 and
// capping page_size at 100.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
