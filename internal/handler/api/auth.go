package api

import (
	"net/http"
	"time"

	reqdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/handler/middleware"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/pkg/cookie"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoSession = errs.New("no authenticated user on request")

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jar          *cookie.Jar
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jar:          cookie.NewJar(cfg.Cookie),
		accessTTL:    cfg.JWT.AccessTokenDuration,
		refreshTTL:   cfg.JWT.RefreshTokenDuration,
	}
}

// @Summary User login
// @Description Login with email and password; tokens are also set as HttpOnly cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user, ok := h.currentUser(c, result.UserID)
	if !ok {
		return
	}

	h.jar.SetTokens(c.Writer, result.TokenPair.AccessToken, result.TokenPair.RefreshToken, h.accessTTL, h.refreshTTL)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.TokenPair.AccessToken,
		User:        user,
	})
}

// @Summary Refresh tokens
// @Description Issue a new token pair from the refresh token cookie or request body
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh request"
// @Success 200 {object} resdto.RefreshResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := cookie.RefreshToken(c.Request)
	if token == "" {
		var req reqdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, "REFRESH_TOKEN_REQUIRED", err, "Refresh token required", nil)
			return
		}
		token = req.RefreshToken
	}

	pair, err := h.authCommands.RefreshToken(c.Request.Context(), token)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.jar.SetTokens(c.Writer, pair.AccessToken, pair.RefreshToken, h.accessTTL, h.refreshTTL)
	c.JSON(http.StatusOK, resdto.RefreshResponse{AccessToken: pair.AccessToken})
}

// @Summary User logout
// @Description Clear the token cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.jar.Clear(c.Writer)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, "TOKEN_REQUIRED", errNoSession, "User not authenticated", nil)
		return
	}

	if user, ok := h.currentUser(c, userID); ok {
		c.JSON(http.StatusOK, user)
	}
}

func (h *AuthHandler) currentUser(c *gin.Context, userID uuid.UUID) (*resdto.UserResponse, bool) {
	view, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	user, err := resdto.FromUserView(view)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return user, true
}
