package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gatherly/gatherly-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register",
		Description: "Creates a new account and returns tokens",
		Tags:        []string{"Auth"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and returns tokens",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Rotates the refresh token and returns a new pair",
		Tags:        []string{"Auth"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Revokes the presented refresh token",
		Tags:        []string{"Auth"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email" doc:"Account email"`
	Password    string `json:"password" validate:"required,min=8" doc:"Account password"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=80" doc:"Public display name"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	UserAgent string `header:"User-Agent"`
	Body      RegisterRequest
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" doc:"Account email"`
	Password string `json:"password" validate:"required" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	UserAgent string `header:"User-Agent"`
	Body      LoginRequest
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" doc:"Opaque refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	UserAgent string `header:"User-Agent"`
	Body      RefreshRequest
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body RefreshRequest
}

// UserResponse contains user profile data.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"Account email"`
	DisplayName string    `json:"display_name" doc:"Public display name"`
	CreatedAt   time.Time `json:"created_at" doc:"Account creation time"`
}

// AuthResponse contains tokens and the user profile.
type AuthResponse struct {
	User         UserResponse `json:"user" doc:"The authenticated user"`
	AccessToken  string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken string       `json:"refresh_token" doc:"Opaque refresh token"`
	ExpiresAt    time.Time    `json:"expires_at" doc:"Access token expiry"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// GetCurrentUserInput contains parameters for the profile endpoint.
type GetCurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// MessageResponse is a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:          result.User.ID,
			Email:       result.User.Email,
			DisplayName: result.User.DisplayName,
			CreatedAt:   result.User.CreatedAt,
		},
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresAt:    result.Tokens.ExpiresAt,
	}
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}
	if !s.authLimiter.Allow(strings.ToLower(input.Body.Email)) {
		return nil, huma.Error429TooManyRequests("Too many attempts, slow down")
	}

	result, err := s.services.Auth.Register(ctx, input.Body.Email, input.Body.Password, input.Body.DisplayName, input.UserAgent)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(result)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}
	if !s.authLimiter.Allow(strings.ToLower(input.Body.Email)) {
		return nil, huma.Error429TooManyRequests("Too many attempts, slow down")
	}

	result, err := s.services.Auth.Login(ctx, input.Body.Email, input.Body.Password, input.UserAgent)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(result)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	result, err := s.services.Auth.Refresh(ctx, input.Body.RefreshToken, input.UserAgent)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(result)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Logged out"}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *GetCurrentUserInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{
		Body: UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}
