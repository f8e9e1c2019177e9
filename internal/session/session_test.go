package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSessionID() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(IDFromContext(request.Context())))
	})
}

func TestMiddlewareIssuesCookie(t *testing.T) {
	handler := Middleware(time.Hour)(echoSessionID())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
	assert.NoError(t, ValidateID(cookies[0].Value))
}

func TestMiddlewareReusesValidCookie(t *testing.T) {
	handler := Middleware(time.Hour)(echoSessionID())
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, id, rec.Body.String())
}

func TestMiddlewareReplacesMalformedCookie(t *testing.T) {
	handler := Middleware(time.Hour)(echoSessionID())

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc/passwd", cookies[0].Value)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
}
