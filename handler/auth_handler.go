package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"syntora/dto"
	"syntora/model"
	"syntora/services"
	"syntora/usecase"
	"syntora/utils"
)

const (
	maxActiveSessions = 5
	sessionTTL        = 24 * time.Hour
)

// SessionStore is the slice of session persistence the auth handlers need.
type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	EndAllUserSessions(ctx context.Context, userID string) (int, error)
}

type AuthHandler struct {
	users    *usecase.UserService
	sessions SessionStore
}

func NewAuthHandler(users *usecase.UserService, sessions SessionStore) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			utils.Conflict(c, "Username already exists")
			return
		}
		log.Printf("Error registering user: %v", err)
		utils.InternalError(c, "Failed to register user")
		return
	}

	utils.Created(c, gin.H{
		"message": "User registered successfully",
		"user":    dto.ToUserProfileResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.BadRequest(c, "Invalid request")
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			utils.Unauthorized(c, "Incorrect username or password")
			return
		}
		log.Printf("Error authenticating user: %v", err)
		utils.InternalError(c, "Failed to log in")
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	var notice string
	if active, err := h.sessions.GetUserActiveSessions(ctx, user.UserID); err == nil && len(active) >= maxActiveSessions {
		// Oldest activity loses its seat.
		oldest := active[len(active)-1]
		if err := h.sessions.EndSession(ctx, oldest.SessionID); err == nil {
			notice = "Logged out of least active session due to session limit"
		}
	}

	if err := h.createSession(c, user.UserID); err != nil {
		utils.TrackError("session", "creation")
		utils.InternalError(c, "Failed to create session")
		return
	}

	response := gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
		"user": gin.H{
			"id":       user.UserID,
			"username": user.Username,
			"email":    user.Email,
		},
	}
	if notice != "" {
		response["notice"] = notice
	}

	utils.Success(c, response)
}

func (h *AuthHandler) createSession(c *gin.Context, userID string) error {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)
	now := time.Now()

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		IPAddress:      c.ClientIP(),
		IsActive:       true,
		CreatedAt:      now,
		ExpiresAt:      now.Add(sessionTTL),
		LastActivityAt: now,
	}
	return h.sessions.CreateSession(c.Request.Context(), session)
}

// Logout blacklists both tokens so neither survives the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	refreshToken := c.GetHeader("Refresh-Token")
	if refreshToken == "" {
		utils.BadRequest(c, "Missing refresh token")
		return
	}

	if err := services.BlacklistTokens(accessToken, refreshToken); err != nil {
		log.Printf("Error blacklisting tokens: %v", err)
		utils.InternalError(c, "Failed to logout")
		return
	}

	utils.Success(c, gin.H{"message": "Successfully logged out"})
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is blacklisted so it cannot be replayed.
func (h *AuthHandler) Refresh(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid refresh token")
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	if services.IsTokenBlacklisted(refreshToken) {
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" || claims["user_id"] == nil {
		utils.Unauthorized(c, "Invalid token claims")
		return
	}

	if exp, ok := claims["exp"].(float64); ok && time.Unix(int64(exp), 0).Before(time.Now()) {
		utils.Unauthorized(c, "Refresh token has expired")
		return
	}

	userID := claims["user_id"].(string)

	newAccessToken, err := services.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate access token")
		return
	}
	newRefreshToken, err := services.GenerateRefreshToken(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := services.BlacklistTokens("", refreshToken); err != nil {
		log.Printf("Failed to blacklist rotated refresh token: %v", err)
	}

	utils.Success(c, gin.H{
		"token":   newAccessToken,
		"refresh": newRefreshToken,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, dto.ToUserProfileResponse(user))
}

func (h *AuthHandler) ActiveSessions(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	sessions, err := h.sessions.GetUserActiveSessions(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions})
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	ended, err := h.sessions.EndAllUserSessions(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "Failed to end all sessions")
		return
	}

	utils.Success(c, gin.H{
		"message":        "Successfully logged out of all sessions",
		"sessions_ended": ended,
	})
}
