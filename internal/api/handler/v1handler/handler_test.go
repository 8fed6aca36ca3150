package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard/internal/api/handler/v1handler"
	"jobboard/internal/auth"
	"jobboard/internal/jobs"
	"jobboard/internal/searches"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubAuth implements auth.Auth with overridable functions.
type stubAuth struct {
	signup        func(ctx context.Context, params auth.SignupParams) (*domain.User, string, error)
	login         func(ctx context.Context, username, password string) (*domain.User, string, error)
	userFromToken func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuth) Signup(ctx context.Context, params auth.SignupParams) (*domain.User, string, error) {
	return s.signup(ctx, params)
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	return s.login(ctx, username, password)
}

func (s *stubAuth) UserFromToken(ctx context.Context, token string) (*domain.User, error) {
	return s.userFromToken(ctx, token)
}

// stubJobs implements jobs.Jobs with overridable functions; unset methods panic.
type stubJobs struct {
	jobs.Jobs

	search     func(ctx context.Context, params jobs.SearchParams, cursor string, limit uint) ([]domain.Job, string, error)
	get        func(ctx context.Context, viewer *domain.User, id domain.JobID) (*domain.Job, *domain.JobApplication, error)
	postedJobs func(ctx context.Context, user *domain.User) ([]domain.Job, error)
}

func (s *stubJobs) Search(ctx context.Context,
	params jobs.SearchParams,
	cursor string,
	limit uint) ([]domain.Job, string, error) {
	return s.search(ctx, params, cursor, limit)
}

func (s *stubJobs) Get(ctx context.Context,
	viewer *domain.User,
	id domain.JobID) (*domain.Job, *domain.JobApplication, error) {
	return s.get(ctx, viewer, id)
}

func (s *stubJobs) PostedJobs(ctx context.Context, user *domain.User) ([]domain.Job, error) {
	return s.postedJobs(ctx, user)
}

// stubSearches implements searches.Searches with overridable functions.
type stubSearches struct {
	searches.Searches

	notifications func(ctx context.Context, user *domain.User) ([]domain.SearchNotification, int64, error)
}

func (s *stubSearches) Notifications(ctx context.Context,
	user *domain.User) ([]domain.SearchNotification, int64, error) {
	return s.notifications(ctx, user)
}

func newTestRouter(deps v1handler.Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	v1handler.New(deps).Register(engine.Group("/v1"))

	return engine
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestSignup(t *testing.T) {
	user := &domain.User{
		ID:          domain.UserID(uuid.New()),
		Username:    "jdoe",
		AccountType: domain.AccountTypeJobSeeker,
	}

	router := newTestRouter(v1handler.Deps{
		Auth: &stubAuth{
			signup: func(_ context.Context, params auth.SignupParams) (*domain.User, string, error) {
				require.Equal(t, "jdoe", params.Username)
				require.Equal(t, domain.AccountTypeJobSeeker, params.AccountType)

				return user, "token-123", nil
			},
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/signup", "",
		`{"username":"jdoe","email":"j@example.com","password":"secret","accountType":"JOB_SEEKER"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp v1handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "token-123", resp.Token)
	require.Equal(t, "jdoe", resp.User.Username)
}

func TestSignup_Conflict(t *testing.T) {
	router := newTestRouter(v1handler.Deps{
		Auth: &stubAuth{
			signup: func(context.Context, auth.SignupParams) (*domain.User, string, error) {
				return nil, "", serrors.With(serrors.ErrConflict, "username %q is taken", "jdoe")
			},
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/signup", "",
		`{"username":"jdoe","email":"j@example.com","password":"secret","accountType":"JOB_SEEKER"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "jdoe")
}

func TestSignup_InvalidBody(t *testing.T) {
	router := newTestRouter(v1handler.Deps{Auth: &stubAuth{}})

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/signup", "", `{"username":"jdoe"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(v1handler.Deps{
		Auth: &stubAuth{
			login: func(context.Context, string, string) (*domain.User, string, error) {
				return nil, "", serrors.With(serrors.ErrUnauthorized, "invalid credentials")
			},
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", "",
		`{"username":"jdoe","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchJobs_PassesFilters(t *testing.T) {
	job := domain.Job{ID: domain.JobID(uuid.New()), Title: "Go Engineer"}

	router := newTestRouter(v1handler.Deps{
		Jobs: &stubJobs{
			search: func(_ context.Context, params jobs.SearchParams, cursor string, limit uint) ([]domain.Job, string, error) {
				require.Equal(t, "backend", params.Query)
				require.Equal(t, domain.WorkTypeRemote, params.WorkType)
				require.Equal(t, []string{"go", "postgresql"}, params.Skills)
				require.NotNil(t, params.SalaryMin)
				require.Equal(t, 100000, *params.SalaryMin)
				require.Equal(t, "next-page", cursor)
				require.Equal(t, uint(5), limit)

				return []domain.Job{job}, "", nil
			},
		},
	})

	rec := doJSON(t, router, http.MethodGet,
		"/v1/jobs?q=backend&workType=REMOTE&skills=go,postgresql&salaryMin=100000&cursor=next-page&limit=5",
		"", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page v1handler.JobPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, "Go Engineer", page.Items[0].Title)
	require.Empty(t, page.NextCursor)
}

func TestGetJob_InvalidID(t *testing.T) {
	router := newTestRouter(v1handler.Deps{Auth: &stubAuth{}, Jobs: &stubJobs{}})

	rec := doJSON(t, router, http.MethodGet, "/v1/jobs/not-a-uuid", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJob_NotFound(t *testing.T) {
	router := newTestRouter(v1handler.Deps{
		Auth: &stubAuth{},
		Jobs: &stubJobs{
			get: func(context.Context, *domain.User, domain.JobID) (*domain.Job, *domain.JobApplication, error) {
				return nil, nil, serrors.With(serrors.ErrNotFound, "job not found")
			},
		},
	})

	rec := doJSON(t, router, http.MethodGet, "/v1/jobs/"+uuid.NewString(), "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	recruiter := &domain.User{
		ID:          domain.UserID(uuid.New()),
		Username:    "recruiter",
		AccountType: domain.AccountTypeRecruiter,
	}

	deps := v1handler.Deps{
		Auth: &stubAuth{
			userFromToken: func(_ context.Context, token string) (*domain.User, error) {
				if token != "good-token" {
					return nil, serrors.With(serrors.ErrUnauthorized, "invalid token")
				}

				return recruiter, nil
			},
		},
		Jobs: &stubJobs{
			postedJobs: func(_ context.Context, user *domain.User) ([]domain.Job, error) {
				require.Equal(t, recruiter.ID, user.ID)

				return []domain.Job{{Title: "Mine"}}, nil
			},
		},
	}
	router := newTestRouter(deps)

	// no token
	rec := doJSON(t, router, http.MethodGet, "/v1/me/jobs", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// bad token
	rec = doJSON(t, router, http.MethodGet, "/v1/me/jobs", "bad-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// good token reaches the handler with the resolved user
	rec = doJSON(t, router, http.MethodGet, "/v1/me/jobs", "good-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Mine")
}

func TestNotifications(t *testing.T) {
	recruiter := &domain.User{ID: domain.UserID(uuid.New()), AccountType: domain.AccountTypeRecruiter}

	router := newTestRouter(v1handler.Deps{
		Auth: &stubAuth{
			userFromToken: func(context.Context, string) (*domain.User, error) {
				return recruiter, nil
			},
		},
		Searches: &stubSearches{
			notifications: func(context.Context, *domain.User) ([]domain.SearchNotification, int64, error) {
				return []domain.SearchNotification{
					{ID: domain.NotificationID(uuid.New()), CandidatesCount: 3},
				}, 1, nil
			},
		},
	})

	rec := doJSON(t, router, http.MethodGet, "/v1/notifications", "token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list v1handler.NotificationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	require.Equal(t, 3, list.Items[0].CandidatesCount)
	require.Equal(t, int64(1), list.UnreadCount)
}

func TestRecruiterGate_MapsToNotFound(t *testing.T) {
	seeker := &domain.User{ID: domain.UserID(uuid.New()), AccountType: domain.AccountTypeJobSeeker}

	router := newTestRouter(v1handler.Deps{
		Auth: &stubAuth{
			userFromToken: func(context.Context, string) (*domain.User, error) {
				return seeker, nil
			},
		},
		Searches: &stubSearches{
			notifications: func(context.Context, *domain.User) ([]domain.SearchNotification, int64, error) {
				return nil, 0, serrors.With(serrors.ErrNotFound, "page not found")
			},
		},
	})

	rec := doJSON(t, router, http.MethodGet, "/v1/notifications", "token", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
