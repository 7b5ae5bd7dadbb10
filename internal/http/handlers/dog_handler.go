// Dog HTTP handlers.
//
// This file exposes the swipe endpoints and the catalog:
//   - PUT    /dog/{id}/{status}/        (set status)
//   - GET    /dog/{id}/{status}/next/   (next dog after cursor {id})
//   - DELETE /dog/{id}/undecided/       (reserved, 501)
//   - GET    /dogs/                     (catalog page, weak ETag)
//   - POST   /dogs/                     (bulk create, Idempotency-Key)
//   - GET    /dogs/{status}/            (caller's dogs with a status)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/http/middleware"
	"github.com/tbourn/pugorugh-backend/internal/services"
	"github.com/tbourn/pugorugh-backend/internal/utils"
)

// HeaderIdempotencyReplayed marks a response served from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

//
// DTOs
//

// StatusResponse is the user's ledger entry for one dog.
type StatusResponse struct {
	ID     int64  `json:"id" example:"12"`
	Dog    int64  `json:"dog" example:"4"`
	Status string `json:"status" example:"liked" enums:"liked,disliked,undecided"`
}

// CreateDogRequest describes one dog to add to the catalog. Age is in
// months.
type CreateDogRequest struct {
	Name          string `json:"name"           binding:"required,max=255" example:"Muffin"`
	ImageFilename string `json:"image_filename" binding:"required,max=255" example:"1.jpg"`
	Breed         string `json:"breed"          binding:"max=255"          example:"Pug"`
	Age           int    `json:"age"            binding:"gte=0"            example:"14"`
	Gender        string `json:"gender"         binding:"required,oneof=m f u"      example:"f"`
	Size          string `json:"size"           binding:"required,oneof=s m l xl u" example:"s"`
}

// CreateDogsRequest is the bulk-create payload.
type CreateDogsRequest struct {
	Dogs []CreateDogRequest `json:"dogs" binding:"required,min=1,max=500,dive"`
}

// DogsResponse wraps created dogs.
type DogsResponse struct {
	Dogs []domain.Dog `json:"dogs"`
}

// ListDogsResponse wraps a page of dogs and pagination information.
type ListDogsResponse struct {
	Dogs       []domain.Dog `json:"dogs"`
	Pagination Pagination   `json:"pagination"`
}

//
// Handlers
//

// SetStatus godoc
// @ID          setDogStatus
// @Summary     Set the caller's status for a dog
// @Description Upserts liked, disliked or undecided (undecided clears a previous decision). Repeating the call is a no-op.
// @Tags        Dogs
// @Produce     json
// @Security    TokenAuth
// @Param       id      path      int     true  "Dog ID"  example(4)
// @Param       status  path      string  true  "Status word"  Enums(liked, disliked, undecided)
// @Success     200     {object}  handlers.StatusResponse
// @Failure     400     {object}  handlers.ErrorResponse  "Invalid status or id"
// @Failure     401     {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404     {object}  handlers.ErrorResponse  "Dog not found"
// @Failure     500     {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dog/{id}/{status}/ [put]
func (h *Handlers) SetStatus(c *gin.Context) {
	uid, authed := currentUser(c)
	if !authed {
		return
	}
	dogID, valid := utils.ParseID(c.Param("id"))
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dog id must be an integer")
		return
	}
	row, err := h.status.Set(c.Request.Context(), uid, dogID, c.Param("status"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, StatusResponse{ID: row.ID, Dog: row.DogID, Status: row.Status().Word()})
}

// NextDog godoc
// @ID          nextDog
// @Summary     Next dog after a cursor
// @Description Returns the lowest-id dog after {id} whose status for the caller matches. `undecided` is the swipe feed and is filtered by the caller's preference; `liked` and `disliked` are not. Use -1 or 0 to start. When nothing matches, unseen dogs are marked undecided and the lookup is retried once.
// @Tags        Dogs
// @Produce     json
// @Security    TokenAuth
// @Param       id      path      int     true  "Cursor: id of the last dog shown"  example(-1)
// @Param       status  path      string  true  "Status word"  Enums(liked, disliked, undecided)
// @Success     200     {object}  domain.Dog
// @Failure     400     {object}  handlers.ErrorResponse  "Invalid status or cursor"
// @Failure     401     {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404     {object}  handlers.ErrorResponse  "No dog found"
// @Failure     500     {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dog/{id}/{status}/next/ [get]
func (h *Handlers) NextDog(c *gin.Context) {
	uid, authed := currentUser(c)
	if !authed {
		return
	}
	cursor, valid := utils.ParseID(c.Param("id"))
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cursor must be an integer")
		return
	}
	f, err := filterForRoute(c.Param("status"))
	if err != nil {
		failErr(c, err)
		return
	}
	d, err := h.selector.Next(c.Request.Context(), uid, f, cursor)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// filterForRoute maps the status path segment to a selector filter. The
// undecided feed is the preference-filtered discovery feed.
func filterForRoute(word string) (services.Filter, error) {
	if word == "" {
		return services.Filter{}, services.ErrInvalidStatus
	}
	f, err := services.FilterForWord(word)
	if err != nil {
		return f, err
	}
	if f.Status == domain.StatusUndecided {
		return services.FilterDiscover, nil
	}
	return f, nil
}

// ClearUndecided godoc
// @ID          clearUndecided
// @Summary     Clear a dog's record (reserved)
// @Description Reserved for undoing a decision; not implemented.
// @Tags        Dogs
// @Produce     json
// @Security    TokenAuth
// @Param       id   path      int  true  "Dog ID"
// @Failure     501  {object}  handlers.ErrorResponse  "Not implemented"
// @Router      /dog/{id}/undecided/ [delete]
func (h *Handlers) ClearUndecided(c *gin.Context) {
	fail(c, http.StatusNotImplemented, ErrCodeNotImplemented, "clearing a dog's status is not supported")
}

// ListDogs godoc
// @ID          listDogs
// @Summary     List the catalog (paginated)
// @Description Returns a page of dogs ordered by id. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Dogs
// @Produce     json
// @Security    TokenAuth
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"dogs:12:1700000000000000000\")
// @Param       page           query   int     false  "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListDogsResponse
// @Header      200  {string}  ETag  "Weak ETag for the catalog version"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dogs/ [get]
func (h *Handlers) ListDogs(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, maxTS, err := h.catalog.Version(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"dogs:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.catalog.ListPage(ctx, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListDogsResponse{Dogs: items, Pagination: newPagination(page, pageSize, total)})
}

// CreateDogs godoc
// @ID          createDogs
// @Summary     Add dogs to the catalog
// @Description Validates and inserts the dogs in order, all or nothing. Retrying with the same Idempotency-Key returns the first result with `Idempotency-Replayed: true`.
// @Tags        Dogs
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateDogsRequest  true  "Dogs to create"
// @Success     201  {object}  handlers.DogsResponse
// @Header      201  {string}  Idempotency-Replayed  "true when served from a stored result"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dogs/ [post]
func (h *Handlers) CreateDogs(c *gin.Context) {
	uid, authed := currentUser(c)
	if !authed {
		return
	}
	var req CreateDogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindingMessage(err))
		return
	}

	in := make([]services.NewDog, len(req.Dogs))
	for i, d := range req.Dogs {
		in[i] = services.NewDog{
			Name:          d.Name,
			ImageFilename: d.ImageFilename,
			Breed:         d.Breed,
			Age:           d.Age,
			Gender:        d.Gender,
			Size:          d.Size,
		}
	}

	key, _ := middleware.GetIdempotencyKey(c)
	dogs, replayed, err := h.catalog.CreateManyIdempotent(c.Request.Context(), uid, middleware.IdempotencyScope(c), key, in)
	if err != nil {
		failErr(c, err)
		return
	}
	if replayed {
		c.Header(HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, DogsResponse{Dogs: dogs})
}

// ListDogsByStatus godoc
// @ID          listDogsByStatus
// @Summary     List the caller's dogs with a status
// @Description Returns a page of dogs whose status for the caller is {status}, ordered by id.
// @Tags        Dogs
// @Produce     json
// @Security    TokenAuth
// @Param       status     path   string  true   "Status word"  Enums(liked, disliked, undecided)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListDogsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid status"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dogs/{status}/ [get]
func (h *Handlers) ListDogsByStatus(c *gin.Context) {
	uid, authed := currentUser(c)
	if !authed {
		return
	}
	st, err := domain.ParseStatusWord(c.Param("status"))
	if err != nil {
		failErr(c, services.ErrInvalidStatus)
		return
	}
	page, pageSize := clampPagination(c)
	items, total, err := h.catalog.ListByStatus(c.Request.Context(), uid, st, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListDogsResponse{Dogs: items, Pagination: newPagination(page, pageSize, total)})
}
