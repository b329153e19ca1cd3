package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogfeed/internal/reqctx"
	"blogfeed/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

// echoUser отвечает user_id из контекста.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	uid, _ := reqctx.GetUserID(r.Context())
	_, _ = w.Write([]byte(uid))
})

func withAuth(header string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/me/blogs", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateToken(secret, "ada", time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	JWTAuth(secret)(echoUser).ServeHTTP(rec, withAuth("Bearer "+token))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ada", rec.Body.String())
}

func TestJWTAuthRejects(t *testing.T) {
	expired, _ := utils.GenerateToken(secret, "ada", -time.Minute)
	foreign, _ := utils.GenerateToken("other-secret", "ada", time.Hour)
	noUser, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	numericUser, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))

	cases := map[string]string{
		"нет заголовка":      "",
		"не bearer":          "Basic YWRhOnB3ZA==",
		"мусор":              "Bearer not-a-jwt",
		"просрочен":          "Bearer " + expired,
		"чужой секрет":       "Bearer " + foreign,
		"без user_id":        "Bearer " + noUser,
		"user_id не строкой": "Bearer " + numericUser,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JWTAuth(secret)(echoUser).ServeHTTP(rec, withAuth(header))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestJWTAuthEmptySecretRejectsEverything(t *testing.T) {
	token, _ := utils.GenerateToken("", "ada", time.Hour)
	rec := httptest.NewRecorder()
	JWTAuth("")(echoUser).ServeHTTP(rec, withAuth("Bearer "+token))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = reqctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get("X-Request-Id"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, "abc", seen)
	require.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal server error")
}

func TestLoggingKeepsStatus(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestOptionalJWTAuth(t *testing.T) {
	token, _ := utils.GenerateToken(secret, "ada", time.Hour)
	foreign, _ := utils.GenerateToken("other-secret", "ada", time.Hour)

	cases := map[string]struct {
		header string
		want   string
	}{
		"валидный токен": {"Bearer " + token, "ada"},
		"без токена":     {"", ""},
		"чужой секрет":   {"Bearer " + foreign, ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			OptionalJWTAuth(secret)(echoUser).ServeHTTP(rec, withAuth(c.header))
			require.Equal(t, http.StatusOK, rec.Code, "публичный маршрут не отвечает 401")
			require.Equal(t, c.want, rec.Body.String())
		})
	}
}
