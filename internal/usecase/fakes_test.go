package usecase

import (
	"context"
	stderrors "errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reliefnet/internal/domain/entity"
	"reliefnet/pkg/errors"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, idToken, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) VerifySessionCookie(ctx context.Context, cookie string) (string, error) {
	args := m.Called(ctx, cookie)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) RevokeSessions(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockAuth) GetPhoneNumber(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) GenerateToken(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) SendVerificationCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	args := m.Called(ctx, phoneNumber, recaptchaToken)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) VerifyPhoneCode(ctx context.Context, sessionInfo, code string) (*entity.PhoneCredential, error) {
	args := m.Called(ctx, sessionInfo, code)
	cred, _ := args.Get(0).(*entity.PhoneCredential)
	return cred, args.Error(1)
}

func (m *mockAuth) TestConnection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type memUserRepo struct {
	profiles   map[string]*entity.UserProfile
	failUpsert bool
}

func newMemUserRepo(profiles ...*entity.UserProfile) *memUserRepo {
	r := &memUserRepo{profiles: map[string]*entity.UserProfile{}}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("User profile", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *memUserRepo) Upsert(_ context.Context, profile *entity.UserProfile) error {
	if r.failUpsert {
		return errors.Internal("Failed to save user profile", stderrors.New("unavailable"))
	}
	existing, ok := r.profiles[profile.ID]
	if !ok {
		cp := *profile
		if cp.Role == "" {
			cp.Role = entity.RoleUser
		}
		cp.CreatedAt = time.Now()
		r.profiles[profile.ID] = &cp
		return nil
	}
	if profile.DisplayName != "" {
		existing.DisplayName = profile.DisplayName
	}
	if profile.PhoneNumber != "" {
		existing.PhoneNumber = profile.PhoneNumber
	}
	existing.UpdatedAt = time.Now()
	return nil
}

type memPhoneLoginRepo struct {
	logins map[string]*entity.PhoneLogin
	seq    int
}

func newMemPhoneLoginRepo() *memPhoneLoginRepo {
	return &memPhoneLoginRepo{logins: map[string]*entity.PhoneLogin{}}
}

func (r *memPhoneLoginRepo) Create(_ context.Context, login *entity.PhoneLogin) error {
	r.seq++
	login.ID = "flow-" + strconv.Itoa(r.seq)
	cp := *login
	r.logins[login.ID] = &cp
	return nil
}

func (r *memPhoneLoginRepo) GetByID(_ context.Context, id string) (*entity.PhoneLogin, error) {
	l, ok := r.logins[id]
	if !ok {
		return nil, errors.NotFound("Phone login", nil)
	}
	cp := *l
	return &cp, nil
}

func (r *memPhoneLoginRepo) Update(_ context.Context, login *entity.PhoneLogin) error {
	cp := *login
	r.logins[login.ID] = &cp
	return nil
}

type memHelpRequestRepo struct {
	requests map[string]*entity.HelpRequest
	seq      int
}

func newMemHelpRequestRepo(requests ...*entity.HelpRequest) *memHelpRequestRepo {
	r := &memHelpRequestRepo{requests: map[string]*entity.HelpRequest{}}
	for _, req := range requests {
		r.requests[req.ID] = req
	}
	return r
}

func (r *memHelpRequestRepo) Create(_ context.Context, request *entity.HelpRequest) error {
	r.seq++
	request.ID = "req-new-" + strconv.Itoa(r.seq)
	request.CreatedAt = time.Now()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *memHelpRequestRepo) GetByID(_ context.Context, id string) (*entity.HelpRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Help request", nil)
	}
	cp := *req
	return &cp, nil
}

func (r *memHelpRequestRepo) Update(_ context.Context, request *entity.HelpRequest) error {
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *memHelpRequestRepo) Delete(_ context.Context, id string) error {
	delete(r.requests, id)
	return nil
}

func (r *memHelpRequestRepo) ListByStatus(_ context.Context, status entity.Status) ([]*entity.HelpRequest, error) {
	var out []*entity.HelpRequest
	for _, req := range r.requests {
		if req.Status == status {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memHelpRequestRepo) AddPhoto(_ context.Context, id, url string) error {
	req, ok := r.requests[id]
	if !ok {
		return errors.NotFound("Help request", nil)
	}
	req.PhotoURLs = append(req.PhotoURLs, url)
	return nil
}

type memHelpOfferRepo struct {
	offers map[string]*entity.HelpOffer
}

func newMemHelpOfferRepo(offers ...*entity.HelpOffer) *memHelpOfferRepo {
	r := &memHelpOfferRepo{offers: map[string]*entity.HelpOffer{}}
	for _, o := range offers {
		r.offers[o.ID] = o
	}
	return r
}

func (r *memHelpOfferRepo) Create(_ context.Context, offer *entity.HelpOffer) error {
	offer.ID = "offer-new"
	cp := *offer
	r.offers[offer.ID] = &cp
	return nil
}

func (r *memHelpOfferRepo) GetByID(_ context.Context, id string) (*entity.HelpOffer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, errors.NotFound("Help offer", nil)
	}
	cp := *o
	return &cp, nil
}

func (r *memHelpOfferRepo) Update(_ context.Context, offer *entity.HelpOffer) error {
	cp := *offer
	r.offers[offer.ID] = &cp
	return nil
}

func (r *memHelpOfferRepo) Delete(_ context.Context, id string) error {
	delete(r.offers, id)
	return nil
}

func (r *memHelpOfferRepo) ListByStatus(_ context.Context, status entity.Status) ([]*entity.HelpOffer, error) {
	var out []*entity.HelpOffer
	for _, o := range r.offers {
		if o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memResourceRepo struct {
	resources map[string]*entity.Resource
}

func newMemResourceRepo(resources ...*entity.Resource) *memResourceRepo {
	r := &memResourceRepo{resources: map[string]*entity.Resource{}}
	for _, res := range resources {
		r.resources[res.ID] = res
	}
	return r
}

func (r *memResourceRepo) Create(_ context.Context, resource *entity.Resource) error {
	resource.ID = "res-new"
	cp := *resource
	r.resources[resource.ID] = &cp
	return nil
}

func (r *memResourceRepo) GetByID(_ context.Context, id string) (*entity.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, errors.NotFound("Resource", nil)
	}
	cp := *res
	return &cp, nil
}

func (r *memResourceRepo) Update(_ context.Context, resource *entity.Resource) error {
	cp := *resource
	r.resources[resource.ID] = &cp
	return nil
}

func (r *memResourceRepo) Delete(_ context.Context, id string) error {
	delete(r.resources, id)
	return nil
}

func (r *memResourceRepo) List(_ context.Context) ([]*entity.Resource, error) {
	var out []*entity.Resource
	for _, res := range r.resources {
		cp := *res
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memFoodPointRepo struct {
	points map[string]*entity.FoodPoint
}

func newMemFoodPointRepo(points ...*entity.FoodPoint) *memFoodPointRepo {
	r := &memFoodPointRepo{points: map[string]*entity.FoodPoint{}}
	for _, p := range points {
		r.points[p.ID] = p
	}
	return r
}

func (r *memFoodPointRepo) Upsert(_ context.Context, point *entity.FoodPoint) error {
	if point.ID == "" {
		point.ID = "fp-new"
	}
	cp := *point
	r.points[point.ID] = &cp
	return nil
}

func (r *memFoodPointRepo) List(_ context.Context) ([]*entity.FoodPoint, error) {
	var out []*entity.FoodPoint
	for _, p := range r.points {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memFileRepo struct {
	files []*entity.FileMetadata
}

func (r *memFileRepo) Create(_ context.Context, metadata *entity.FileMetadata) error {
	metadata.ID = "file-" + strconv.Itoa(len(r.files)+1)
	cp := *metadata
	r.files = append(r.files, &cp)
	return nil
}

func (r *memFileRepo) GetByEntityID(_ context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	out := []*entity.FileMetadata{}
	for _, f := range r.files {
		if f.EntityType == entityType && f.EntityID == entityID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFileRepo) DeleteByEntityID(_ context.Context, entityType, entityID string) error {
	kept := r.files[:0]
	for _, f := range r.files {
		if f.EntityType != entityType || f.EntityID != entityID {
			kept = append(kept, f)
		}
	}
	r.files = kept
	return nil
}

type fakePhotoStore struct {
	uploads    map[string]string
	deleted    []string
	failUpload bool
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{uploads: map[string]string{}}
}

func (s *fakePhotoStore) Upload(_ context.Context, objectName, contentType string, _ []byte) (string, error) {
	if s.failUpload {
		return "", stderrors.New("bucket unavailable")
	}
	url := "https://storage.googleapis.com/test-bucket/" + objectName
	s.uploads[url] = contentType
	return url, nil
}

func (s *fakePhotoStore) Delete(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type recordingFeed struct {
	events []entity.FeedEvent
}

func (f *recordingFeed) Publish(event entity.FeedEvent) {
	f.events = append(f.events, event)
}

func (f *recordingFeed) types() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type staticLimiter struct {
	allow bool
	keys  []string
}

func (l *staticLimiter) Allow(key, _ string) (bool, time.Duration) {
	l.keys = append(l.keys, key)
	if l.allow {
		return true, 0
	}
	return false, 5 * time.Minute
}

func requireAppError(t *testing.T, err error, code, messageID string) {
	t.Helper()

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	if messageID != "" {
		require.Equal(t, messageID, appErr.MessageID)
	}
}
