package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
	"github.com/RyanColorado04/DjangoSandbox2/internal/store"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store        *store.Store
	sessionStore *sessions.CookieStore
	templates    *TemplateCache
	auth         *AuthHandler
	catalog      *CatalogHandler
	cart         *CartHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.DB.Close() })

	sessionStore := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))

	templates := NewTemplateCache()
	require.NoError(t, templates.Load("../../templates"))

	env := &testEnv{
		store:        s,
		sessionStore: sessionStore,
		templates:    templates,
	}
	env.auth = &AuthHandler{Store: s, SessionStore: sessionStore, Templates: templates}
	env.catalog = &CatalogHandler{Store: s, Templates: templates, SessionStore: sessionStore}
	env.cart = &CartHandler{Store: s, Templates: templates, SessionStore: sessionStore}
	return env
}

func (e *testEnv) seedUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, e.store.CreateUser(username, string(hash), false))
	u, err := e.store.GetUserByUsername(username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func (e *testEnv) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	c := &models.Category{Name: "Test Category"}
	require.NoError(t, e.store.CreateCategory(c))
	p := &models.Product{
		CategoryID:  c.ID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: "a " + name,
	}
	require.NoError(t, e.store.CreateProduct(p))
	return p
}

// loginCookies builds a valid session cookie for the user without going
// through the login handler.
func (e *testEnv) loginCookies(t *testing.T, userID int) []*http.Cookie {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	session, err := e.sessionStore.Get(r, sessionName)
	require.NoError(t, err)
	session.Values["authenticated"] = true
	session.Values["user_id"] = userID
	require.NoError(t, session.Save(r, w))

	return w.Result().Cookies()
}

func doRequest(handler http.HandlerFunc, r *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}
