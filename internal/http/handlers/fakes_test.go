package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/http/middleware"
	"github.com/tbourn/pugorugh-backend/internal/services"
)

// ---------- service fakes ----------

type fakeUsers struct {
	register func(ctx context.Context, username, password string) (*domain.User, error)
	login    func(ctx context.Context, username, password string) (string, error)
}

func (f fakeUsers) Register(ctx context.Context, u, p string) (*domain.User, error) {
	if f.register != nil {
		return f.register(ctx, u, p)
	}
	return &domain.User{ID: 1, Username: u}, nil
}

func (f fakeUsers) Login(ctx context.Context, u, p string) (string, error) {
	if f.login != nil {
		return f.login(ctx, u, p)
	}
	return "tok", nil
}

type fakePrefs struct {
	get    func(ctx context.Context, userID int64) (*domain.Preference, error)
	update func(ctx context.Context, userID int64, in services.PreferenceUpdate) (*domain.Preference, error)
}

func (f fakePrefs) Get(ctx context.Context, uid int64) (*domain.Preference, error) {
	if f.get != nil {
		return f.get(ctx, uid)
	}
	return &domain.Preference{ID: 1, UserID: uid}, nil
}

func (f fakePrefs) Update(ctx context.Context, uid int64, in services.PreferenceUpdate) (*domain.Preference, error) {
	if f.update != nil {
		return f.update(ctx, uid, in)
	}
	return &domain.Preference{ID: 1, UserID: uid, Gender: in.Gender, Size: in.Size, Age: in.Age}, nil
}

type fakeCatalog struct {
	create   func(ctx context.Context, userID int64, scope, key string, in []services.NewDog) ([]domain.Dog, bool, error)
	listPage func(ctx context.Context, page, pageSize int) ([]domain.Dog, int64, error)
	byStatus func(ctx context.Context, userID int64, st domain.Status, page, pageSize int) ([]domain.Dog, int64, error)
	version  func(ctx context.Context) (int64, *time.Time, error)
}

func (f fakeCatalog) CreateManyIdempotent(ctx context.Context, uid int64, scope, key string, in []services.NewDog) ([]domain.Dog, bool, error) {
	if f.create != nil {
		return f.create(ctx, uid, scope, key, in)
	}
	out := make([]domain.Dog, len(in))
	for i, d := range in {
		out[i] = domain.Dog{ID: int64(i + 1), Name: d.Name}
	}
	return out, false, nil
}

func (f fakeCatalog) ListPage(ctx context.Context, page, pageSize int) ([]domain.Dog, int64, error) {
	if f.listPage != nil {
		return f.listPage(ctx, page, pageSize)
	}
	return []domain.Dog{}, 0, nil
}

func (f fakeCatalog) ListByStatus(ctx context.Context, uid int64, st domain.Status, page, pageSize int) ([]domain.Dog, int64, error) {
	if f.byStatus != nil {
		return f.byStatus(ctx, uid, st, page, pageSize)
	}
	return []domain.Dog{}, 0, nil
}

func (f fakeCatalog) Version(ctx context.Context) (int64, *time.Time, error) {
	if f.version != nil {
		return f.version(ctx)
	}
	return 0, nil, nil
}

type fakeSelector struct {
	next func(ctx context.Context, userID int64, f services.Filter, cursor int64) (*domain.Dog, error)
}

func (f fakeSelector) Next(ctx context.Context, uid int64, flt services.Filter, cursor int64) (*domain.Dog, error) {
	if f.next != nil {
		return f.next(ctx, uid, flt, cursor)
	}
	return nil, services.ErrNoDogFound
}

type fakeStatus struct {
	set func(ctx context.Context, userID, dogID int64, word string) (*domain.Interaction, error)
}

func (f fakeStatus) Set(ctx context.Context, uid, dogID int64, word string) (*domain.Interaction, error) {
	if f.set != nil {
		return f.set(ctx, uid, dogID, word)
	}
	st, err := domain.ParseStatusWord(word)
	if err != nil {
		return nil, services.ErrInvalidStatus
	}
	return &domain.Interaction{ID: 9, UserID: uid, DogID: dogID, StatusCode: st.Code()}, nil
}

// ---------- helpers ----------

// testHandlers fills unset services with defaults.
type testHandlers struct {
	users    UserService
	prefs    PreferenceService
	catalog  CatalogService
	selector Selector
	status   StatusService
}

func (t testHandlers) build() *Handlers {
	if t.users == nil {
		t.users = fakeUsers{}
	}
	if t.prefs == nil {
		t.prefs = fakePrefs{}
	}
	if t.catalog == nil {
		t.catalog = fakeCatalog{}
	}
	if t.selector == nil {
		t.selector = fakeSelector{}
	}
	if t.status == nil {
		t.status = fakeStatus{}
	}
	return New(t.users, t.prefs, t.catalog, t.selector, t.status)
}

// newRouter mounts h like the real router: public user routes and the rest
// behind a fake auth step that authenticates as uid (0 = anonymous).
func newRouter(t *testing.T, h *Handlers, uid int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/user/", h.Register)
	r.POST("/user/login/", h.Login)

	api := r.Group("")
	api.Use(func(c *gin.Context) {
		if uid != 0 {
			middleware.SetUserID(c, uid)
		}
		c.Next()
	})
	api.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	api.GET("/user/preferences/", h.GetPreferences)
	api.PUT("/user/preferences/", h.UpdatePreferences)
	api.PUT("/dog/:id/:status/", h.SetStatus)
	api.GET("/dog/:id/:status/next/", h.NextDog)
	api.DELETE("/dog/:id/undecided/", h.ClearUndecided)
	api.GET("/dogs/", h.ListDogs)
	api.POST("/dogs/", h.CreateDogs)
	api.GET("/dogs/:status/", h.ListDogsByStatus)
	return r
}

func do(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T from %q: %v", v, w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d (body %s)", w.Code, status, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != code {
		t.Fatalf("code = %q; want %q", er.Code, code)
	}
	if er.RequestID == "" {
		t.Fatalf("missing request_id in %+v", er)
	}
	return er
}
