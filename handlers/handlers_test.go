package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linkup/database"
	"linkup/handlers"
	"linkup/middleware"
	"linkup/repositories"
	"linkup/routes"
)

var testSecret = []byte("test-secret")

// newTestServer wires the full stack (router, middleware, handlers,
// repositories) on top of an in-memory sqlite database.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	userHandler := handlers.NewUserHandler(repositories.NewUserRepository(db), testSecret, 24*time.Hour)
	postHandler := handlers.NewPostHandler(repositories.NewPostRepository(db))

	return routes.SetupRoutes(userHandler, postHandler, testSecret)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

// register creates a user through the public API and returns its session
// cookie and id.
func register(t *testing.T, srv http.Handler, username string) (*http.Cookie, string) {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/users/register", map[string]string{
		"name":     "Test " + username,
		"userName": username,
		"email":    username + "@example.com",
		"password": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cookie := tokenCookie(w)
	require.NotNil(t, cookie)

	body := decodeBody(t, w)
	id, _ := body["_id"].(string)
	require.NotEmpty(t, id)

	return cookie, id
}
