package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jimiolaniyan/useraccounts/account"
)

type HandlerTestSuite struct {
	suite.Suite
	svc    account.Service
	router http.Handler
	id     account.ID
}

func (s *HandlerTestSuite) SetupTest() {
	s.svc = account.NewService(account.NewMemoryStore())
	h, err := NewHandler(s.svc)
	require.NoError(s.T(), err)

	router := httprouter.New()
	h.RegisterRoutes(router)
	s.router = AccessLog(zerolog.Nop(), router)

	s.id, err = s.svc.CreateAccount(context.Background(), account.Details{
		Username: "alice", Email: "a@x.com", Password: "pw", PasswordConfirmation: "pw", Phone: "555",
	})
	require.NoError(s.T(), err)
}

func (s *HandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *HandlerTestSuite) post(path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

func form(username, email, pwd, vfypwd string) url.Values {
	return url.Values{"username": {username}, "email": {email}, "pwd": {pwd}, "vfypwd": {vfypwd}}
}

func (s *HandlerTestSuite) TestPages() {
	tests := []struct {
		path, want string
		wantCode   int
	}{
		{"/user/login", `name="pwd"`, http.StatusOK},
		{"/user/new", `name="vfypwd"`, http.StatusOK},
		{"/user/" + string(s.id), `value="alice"`, http.StatusOK},
		{"/user/" + string(account.NewID()), "Page not found", http.StatusNotFound},
	}

	for _, tt := range tests {
		w := s.get(tt.path)

		assert.Equal(s.T(), tt.wantCode, w.Code, tt.path)
		assert.Contains(s.T(), w.Body.String(), tt.want, tt.path)
		assert.Equal(s.T(), "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	}
}

func (s *HandlerTestSuite) TestRootRedirectsToLogin() {
	w := s.get("/")

	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/user/login", w.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestLogin() {
	w := s.post("/user/login", url.Values{"username": {"alice"}, "pwd": {"pw"}})
	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/user/"+string(s.id), w.Header().Get("Location"))

	for _, f := range []url.Values{
		{"username": {"alice"}, "pwd": {"wrong"}},
		{"username": {"bob"}, "pwd": {"pw"}},
		{},
	} {
		w := s.post("/user/login", f)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
		assert.Contains(s.T(), w.Body.String(), "Invalid username/password")
	}
}

func (s *HandlerTestSuite) TestRegister() {
	tests := []struct {
		form      url.Values
		wantCode  int
		wantAlert string
	}{
		{form("bob", "b@x.com", "pw", "other"), http.StatusUnprocessableEntity, "Passwords do not match"},
		{form("alice", "b@x.com", "pw", "pw"), http.StatusConflict, "Username already taken"},
		{form("bob", "a@x.com", "pw", "pw"), http.StatusConflict, "Email already taken"},
		{form("bob", "b@x.com", "pw", "pw"), http.StatusSeeOther, ""},
	}

	for _, tt := range tests {
		w := s.post("/user/new", tt.form)

		assert.Equal(s.T(), tt.wantCode, w.Code)
		if tt.wantAlert != "" {
			assert.Contains(s.T(), w.Body.String(), tt.wantAlert)
			assert.Contains(s.T(), w.Body.String(), "Enter your information again")
		} else {
			assert.Equal(s.T(), "/user/login", w.Header().Get("Location"))
		}
	}

	_, err := s.svc.CheckCredentials(context.Background(), "bob", "pw")
	assert.NoError(s.T(), err)
}

func (s *HandlerTestSuite) TestUpdateProfile() {
	path := "/user/" + string(s.id)

	w := s.post(path, form("alice2", "a2@x.com", "x", "y"))
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Passwords do not match")
	assert.Contains(s.T(), w.Body.String(), `value="alice"`)

	w = s.post(path, form("alice2", "a2@x.com", "pw2", "pw2"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Information successfully updated")
	assert.Contains(s.T(), w.Body.String(), `value="alice2"`)

	w = s.post("/user/"+string(account.NewID()), form("x", "x@x.com", "pw", "pw"))
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Page not found")
}

func (s *HandlerTestSuite) TestUpdateProfile_TakenByAnotherAccount() {
	_, err := s.svc.CreateAccount(context.Background(), account.Details{
		Username: "bob", Email: "b@x.com", Password: "pw", PasswordConfirmation: "pw",
	})
	require.NoError(s.T(), err)
	path := "/user/" + string(s.id)

	tests := []struct {
		form      url.Values
		wantAlert string
	}{
		{form("bob", "a@x.com", "pw", "pw"), "Username already taken"},
		{form("alice", "b@x.com", "pw", "pw"), "Email already taken"},
	}

	for _, tt := range tests {
		w := s.post(path, tt.form)

		assert.Equal(s.T(), http.StatusConflict, w.Code)
		assert.Contains(s.T(), w.Body.String(), tt.wantAlert)
		assert.Contains(s.T(), w.Body.String(), `value="alice"`)
	}

	acc, err := s.svc.GetAccount(context.Background(), s.id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", acc.Username)
	assert.Equal(s.T(), "a@x.com", acc.Email)
}

func (s *HandlerTestSuite) TestRequestIDHeader() {
	w := s.get("/user/login")

	assert.NotEmpty(s.T(), w.Header().Get("X-Request-Id"))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestAlertFor(t *testing.T) {
	tests := []struct {
		err       error
		wantLevel string
		wantTitle string
	}{
		{account.ErrPasswordMismatch, "warning", "Passwords do not match"},
		{fmt.Errorf("update: %w", account.ErrExistingUsername), "warning", "Username already taken"},
		{fmt.Errorf("update: %w", account.ErrExistingEmail), "warning", "Email already taken"},
		{fmt.Errorf("hash: %w", account.ErrPasswordTooLong), "warning", "Password is too long"},
		{account.ErrInvalidCredentials, "warning", "Invalid username/password"},
		{errors.New("store down"), "danger", "Something went wrong"},
	}

	for _, tt := range tests {
		a := alertFor(tt.err)
		assert.Equal(t, tt.wantLevel, a.Level, tt.err.Error())
		assert.Equal(t, tt.wantTitle, a.Title, tt.err.Error())
	}
}

func TestLoadViews(t *testing.T) {
	v, err := loadViews()

	require.NoError(t, err)
	assert.Len(t, v, 4)
}
