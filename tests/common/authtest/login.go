//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	"github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/pkg/cookie"
	"github.com/bruceg7333/water-shop-api/tests/common/dbtest"
	"github.com/bruceg7333/water-shop-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
)

// Session is what a client holds after logging in: the bearer token mini-program clients
// send and the cookies a browser would replay.
type Session struct {
	AccessToken string
	Cookies     []*http.Cookie
}

func Login(t *testing.T, router *gin.Engine, email, password string) Session {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, loginPath,
		request.LoginRequest{Email: email, Password: password}, "")

	var res response.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	require.NotEmpty(t, res.AccessToken)

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "login did not set the access token cookie")
	require.Equal(t, res.AccessToken, accessCookie.Value)

	return Session{AccessToken: res.AccessToken, Cookies: httptest.ExtractCookies(w)}
}

// LoginUser returns only the bearer token.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	return Login(t, router, email, password).AccessToken
}

// CreateAndLogin seeds an active user with dbtest.TestPassword and logs in as them.
func CreateAndLogin(t *testing.T, db dbtest.Querier, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, dbtest.TestPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, logoutPath, nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
