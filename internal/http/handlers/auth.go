package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickfix-labs/quickfix/internal/config"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
	"github.com/quickfix-labs/quickfix/internal/notifications"
	"github.com/quickfix-labs/quickfix/internal/repo"
	"github.com/quickfix-labs/quickfix/internal/security"
)

type UserReader interface {
	GetUser(ctx context.Context, username string) (user.User, error)
}

type UserWriter interface {
	CreateUser(ctx context.Context, u user.User) error
}

type TokenIssuer interface {
	GenerateAccessToken(username, role string) (string, error)
}

type AuthHandler struct {
	users    UserReader
	writer   UserWriter
	jwt      TokenIssuer
	notifier notifications.Notifier
	log      *slog.Logger
}

func NewAuthHandler(users UserReader, writer UserWriter, jwt TokenIssuer, notifier notifications.Notifier, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		writer:   writer,
		jwt:      jwt,
		notifier: notifier,
		log:      log,
	}
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=3,max=40"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=customer provider"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u := user.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.writer.CreateUser(cctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrConflict):
			RespondConflict(ctx, "username_taken", "Username is already in use.")
		case errors.Is(err, repo.ErrUnavailable):
			h.log.Error("create user failed", "username", req.Username, "err", err)
			RespondUnavailable(ctx, "Could not create user")
		default:
			h.log.Error("create user failed", "username", req.Username, "err", err)
			RespondInternal(ctx, "Could not create user")
		}
		return
	}

	notifyBestEffort(ctx, h.notifier, h.log, "New user: "+u.Username)

	ctx.JSON(http.StatusCreated, gin.H{
		"username": u.Username,
		"role":     u.Role,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for the lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.users.GetUser(cctx, req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// burn a hash comparison so a missing user costs the same
			// as a wrong password, then fail the same way
			_ = security.CheckPasswordDummy(req.Password)
			RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
			return
		}

		h.log.Error("login lookup failed", "username", req.Username, "err", err)
		RespondUnavailable(ctx, "Could not log in")
		return
	}

	if err := security.CheckPassword(found.PasswordHash, req.Password); err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(found.Username, string(found.Role))
	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
	})
}
