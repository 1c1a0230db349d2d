package router

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"reliefnet/internal/adapter/api"
	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/internal/infrastructure/ratelimit"
	"reliefnet/internal/infrastructure/websocket"
	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
)

type stubAuth struct {
	usecase.AuthProvider
	sessions map[string]string
	revoked  []string
}

func (s *stubAuth) VerifySessionCookie(_ context.Context, cookie string) (string, error) {
	if uid, ok := s.sessions[cookie]; ok {
		return uid, nil
	}
	return "", stderrors.New("session cookie revoked")
}

func (s *stubAuth) VerifyToken(_ context.Context, token string) (string, error) {
	if token == "valid-id-token" {
		return "uid-token", nil
	}
	return "", stderrors.New("invalid id token")
}

func (s *stubAuth) GetPhoneNumber(_ context.Context, _ string) (string, error) {
	return "+34612345678", nil
}

func (s *stubAuth) RevokeSessions(_ context.Context, uid string) error {
	s.revoked = append(s.revoked, uid)
	return nil
}

func (s *stubAuth) GenerateToken(_ context.Context, uid string) (string, error) {
	return "custom-token-" + uid, nil
}

func (s *stubAuth) TestConnection(_ context.Context) error {
	return nil
}

type stubUsers map[string]*entity.UserProfile

func (u stubUsers) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	if p, ok := u[id]; ok {
		return p, nil
	}
	return nil, errors.NotFound("User profile", nil)
}

func (u stubUsers) Upsert(_ context.Context, profile *entity.UserProfile) error {
	u[profile.ID] = profile
	return nil
}

type stubResources struct {
	repository.ResourceRepository
}

func (stubResources) List(_ context.Context) ([]*entity.Resource, error) {
	return []*entity.Resource{}, nil
}

func (stubResources) GetByID(_ context.Context, _ string) (*entity.Resource, error) {
	return nil, errors.NotFound("Resource", nil)
}

type stubFoodPoints struct {
	saved []*entity.FoodPoint
}

func (s *stubFoodPoints) Upsert(_ context.Context, point *entity.FoodPoint) error {
	s.saved = append(s.saved, point)
	return nil
}

func (s *stubFoodPoints) List(_ context.Context) ([]*entity.FoodPoint, error) {
	return s.saved, nil
}

type fixture struct {
	e          *echo.Echo
	auth       *stubAuth
	foodPoints *stubFoodPoints
}

func newFixture(environment string) *fixture {
	auth := &stubAuth{sessions: map[string]string{
		"coord-cookie": "coord",
		"vol-cookie":   "vol",
	}}
	users := stubUsers{
		"coord": {ID: "coord", DisplayName: "Coordinadora", Role: entity.RoleCoordinator},
		"vol":   {ID: "vol", DisplayName: "Voluntario", Role: entity.RoleUser},
	}
	foodPoints := &stubFoodPoints{}

	sessionUseCase := usecase.NewSessionUseCase(auth, users, time.Hour)
	handler.Setup(
		sessionUseCase,
		usecase.NewPhoneLoginUseCase(nil, users, auth, ratelimit.NewRateLimiter(), usecase.PhoneLoginConfig{CountryCode: "+34"}),
		usecase.NewUserUseCase(users, auth),
		usecase.NewHelpRequestUseCase(nil, users, nil, nil, nil),
		usecase.NewHelpOfferUseCase(nil, users, nil),
		usecase.NewResourceUseCase(stubResources{}, users, nil),
		usecase.NewFoodPointUseCase(foodPoints, time.UTC),
		handler.CookieConfig{Name: "session"},
	)
	handler.SetupFeedHandler(websocket.NewManager(), nil)
	handler.SetupHealthHandler(auth)

	e := echo.New()
	e.Validator = api.NewValidator()
	Setup(e,
		middleware.NewAuthMiddleware(sessionUseCase, "session"),
		middleware.NewCoordinatorMiddleware(users),
		ratelimit.NewRateLimiter(),
		environment,
	)

	return &fixture{e: e, auth: auth, foodPoints: foodPoints}
}

func (f *fixture) do(method, target, body, cookie string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestResourceRoutesSplitPublicAndProtected(t *testing.T) {
	f := newFixture("production")

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/v1/resources", "", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/v1/resources/missing", "", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/resources", `{"item":"Palas"}`, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodDelete, "/v1/resources/r1", "", "", nil).Code)
}

func TestFoodPointSaveRequiresCoordinator(t *testing.T) {
	f := newFixture("production")
	body := `{"id":"fp-1","name":"Comedor Centro","address":"Plaza Mayor 1","capacity":50,"schedule":{"lunch":"12:00 - 15:00"}}`

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/v1/food-points", "", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/food-points", body, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/v1/food-points", body, "vol-cookie", nil).Code)
	assert.Empty(t, f.foodPoints.saved)

	assert.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/v1/food-points", body, "coord-cookie", nil).Code)
	assert.Len(t, f.foodPoints.saved, 1)
}

func TestDevTokenOnlyInDevelopment(t *testing.T) {
	rec := newFixture("production").do(http.MethodPost, "/v1/dev/token", `{"uid":"uid-1"}`, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = newFixture("development").do(http.MethodPost, "/v1/dev/token", `{"uid":"uid-1"}`, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "custom-token-uid-1")
}

func TestSessionRoutesWithRevokedCookie(t *testing.T) {
	f := newFixture("production")

	rec := f.do(http.MethodGet, "/api/auth/session", "", "revoked-cookie", map[string]string{"Authorization": "Bearer valid-id-token"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"uid":"uid-token"`)

	rec = f.do(http.MethodDelete, "/api/auth/session", "", "revoked-cookie", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "session=;")
	assert.Empty(t, f.auth.revoked)

	rec = f.do(http.MethodDelete, "/api/auth/session", "", "vol-cookie", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"vol"}, f.auth.revoked)
}
