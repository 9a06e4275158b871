package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
	"github.com/quickfix-labs/quickfix/internal/http/handlers"
	"github.com/quickfix-labs/quickfix/internal/repo"
	"github.com/quickfix-labs/quickfix/internal/security"
)

// Keep Gin quiet during tests

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Fake implementations of the handlers.UserReader / UserWriter interfaces

type fakeUsersRepo struct {
	getFn    func(ctx context.Context, username string) (user.User, error)
	createFn func(ctx context.Context, u user.User) error
}

func (f *fakeUsersRepo) GetUser(ctx context.Context, username string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, username)
	}
	return user.User{}, repo.ErrNotFound
}

func (f *fakeUsersRepo) CreateUser(ctx context.Context, u user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

type fakeTokenIssuer struct {
	generateFn func(username, role string) (string, error)
}

func (f *fakeTokenIssuer) GenerateAccessToken(username, role string) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(username, role)
	}
	return "test-token", nil
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Send(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, path, h)
	return r
}

func TestSignUpHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
		wantCode       string
	}{
		{
			name: "success",
			body: `{"username": "alice", "password": "s3cret-pass", "role": "customer"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, u user.User) error {
					if u.Username != "alice" {
						return errors.New("unexpected username")
					}
					if u.PasswordHash == "s3cret-pass" {
						return errors.New("password stored in the clear")
					}
					return nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "validation_short_password",
			body:           `{"username": "alice", "password": "short", "role": "customer"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "validation_bad_role",
			body:           `{"username": "alice", "password": "s3cret-pass", "role": "admin"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate_username",
			body: `{"username": "alice", "password": "s3cret-pass", "role": "customer"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, u user.User) error {
					return repo.ErrConflict
				}
			},
			wantStatusCode: http.StatusConflict,
			wantCode:       "username_taken",
		},
		{
			name: "backend_unavailable",
			body: `{"username": "alice", "password": "s3cret-pass", "role": "customer"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, u user.User) error {
					return repo.ErrUnavailable
				}
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantCode:       "backend_unavailable",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsersRepo{}
			if tt.repoSetUp != nil {
				tt.repoSetUp(users)
			}

			notifier := &recordingNotifier{}
			h := handlers.NewAuthHandler(users, users, &fakeTokenIssuer{}, notifier, discardLogger())

			r := setupRouter(http.MethodPost, "/auth/signup", h.SignUp)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantCode != "" {
				var resp struct {
					Error handlers.APIError `json:"error"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if resp.Error.Code != tt.wantCode {
					t.Fatalf("got error code %q, want %q", resp.Error.Code, tt.wantCode)
				}
			}

			if tt.wantStatusCode == http.StatusCreated && len(notifier.messages) != 1 {
				t.Fatalf("expected one notification, got %v", notifier.messages)
			}
		})
	}
}

func TestSignUpNotifierFailureIsNonFatal(t *testing.T) {
	users := &fakeUsersRepo{}
	notifier := &recordingNotifier{err: errors.New("sns down")}

	h := handlers.NewAuthHandler(users, users, &fakeTokenIssuer{}, notifier, discardLogger())
	r := setupRouter(http.MethodPost, "/auth/signup", h.SignUp)

	body := `{"username": "alice", "password": "s3cret-pass", "role": "provider"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	known := user.User{Username: "alice", PasswordHash: hash, Role: user.RoleCustomer}

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
		wantCode       string
	}{
		{
			name: "success",
			body: `{"username": "alice", "password": "s3cret-pass"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return known, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "wrong_password",
			body: `{"username": "alice", "password": "wrong-pass1"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return known, nil
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       "invalid_credentials",
		},
		{
			// an unknown username must be indistinguishable from a
			// wrong password
			name:           "unknown_username",
			body:           `{"username": "nobody", "password": "s3cret-pass"}`,
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       "invalid_credentials",
		},
		{
			name: "backend_unavailable",
			body: `{"username": "alice", "password": "s3cret-pass"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return user.User{}, repo.ErrUnavailable
				}
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsersRepo{}
			if tt.repoSetUp != nil {
				tt.repoSetUp(users)
			}

			h := handlers.NewAuthHandler(users, users, &fakeTokenIssuer{}, &recordingNotifier{}, discardLogger())
			r := setupRouter(http.MethodPost, "/auth/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantCode != "" {
				var resp struct {
					Error handlers.APIError `json:"error"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if resp.Error.Code != tt.wantCode {
					t.Fatalf("got error code %q, want %q", resp.Error.Code, tt.wantCode)
				}
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp struct {
					AccessToken string `json:"accessToken"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode token body: %v", err)
				}
				if resp.AccessToken == "" {
					t.Fatal("expected a non-empty access token")
				}
			}
		})
	}
}
