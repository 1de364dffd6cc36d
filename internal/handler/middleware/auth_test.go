//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/handler/middleware"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/jwt"
	"storefront-api/internal/usecase"
	"storefront-api/tests/common/authtest"
	"storefront-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	tokens *authtest.JWTHelper
	secret string
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	s.secret = cfg.JWT.Secret
	s.tokens = authtest.NewJWTHelper(cfg.JWT)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, 0)))
	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": role.String()})
	}

	s.router = gin.New()
	s.router.GET("/me", auth.RequireAuth(), whoami)
	s.router.GET("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin), whoami)
	s.router.GET("/customer", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleCustomer), whoami)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	userID := uuid.New()

	s.Run("success: bearer token", func() {
		token := s.tokens.GenerateToken(s.T(), userID, user.RoleCustomer)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(userID.String(), body["user_id"])
		s.Equal("customer", body["role"])
	})

	s.Run("success: access token cookie", func() {
		cookieUser := uuid.New()
		cookies := []*http.Cookie{authtest.AccessTokenCookie(s.tokens.GenerateToken(s.T(), cookieUser, user.RoleAdmin))}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/me", nil, cookies)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(cookieUser.String(), body["user_id"])
		s.Equal("admin", body["role"])
	})

	s.Run("success: a token without a role claim is a customer", func() {
		token, err := jwt.NewService(s.secret, time.Hour).GenerateToken(userID, "")
		s.Require().NoError(err)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("customer", body["role"])
	})

	s.Run("error: rejected tokens", func() {
		anonymous, err := jwt.NewService(s.secret, time.Hour).GenerateToken(uuid.Nil, user.RoleCustomer)
		s.Require().NoError(err)
		unknownRole, err := jwt.NewService(s.secret, time.Hour).GenerateToken(userID, user.Role("superuser"))
		s.Require().NoError(err)

		testCases := []struct {
			name        string
			token       string
			expectedMsg string
		}{
			{name: "missing", token: "", expectedMsg: "Access token required"},
			{name: "garbage", token: "not-a-jwt", expectedMsg: "Invalid or expired token"},
			{name: "expired", token: s.tokens.CreateExpiredToken(s.T(), userID, user.RoleCustomer), expectedMsg: "Invalid or expired token"},
			{name: "foreign signature", token: s.tokens.CreateForeignToken(s.T(), userID, user.RoleCustomer), expectedMsg: "Invalid or expired token"},
			{name: "no user id", token: anonymous, expectedMsg: "Invalid or expired token"},
			{name: "unknown role", token: unknownRole, expectedMsg: "Invalid or expired token"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, tc.token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	testCases := []struct {
		name         string
		path         string
		role         user.Role
		expectedCode int
	}{
		{name: "customer on customer route", path: "/customer", role: user.RoleCustomer, expectedCode: http.StatusOK},
		{name: "admin on customer route", path: "/customer", role: user.RoleAdmin, expectedCode: http.StatusOK},
		{name: "admin on admin route", path: "/admin", role: user.RoleAdmin, expectedCode: http.StatusOK},
		{name: "customer on admin route", path: "/admin", role: user.RoleCustomer, expectedCode: http.StatusForbidden},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			token := s.tokens.GenerateToken(s.T(), uuid.New(), tc.role)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, token)
			if tc.expectedCode == http.StatusOK {
				httptest.AssertSuccessResponse(s.T(), rec, tc.expectedCode, nil)
			} else {
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedCode, "Insufficient permissions")
			}
		})
	}
}
