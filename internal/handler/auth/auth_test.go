package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler/handlertest"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/upload"
	"storefront/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	updateUserProfilePic = store.UpdateUserProfilePic
}

func newIssuer(t *testing.T) *service.TokenIssuer {
	t.Helper()
	ti, err := service.NewTokenIssuer("testsecret", "example.com")
	require.NoError(t, err)
	return ti
}

func noSuchEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	return nil, fmt.Errorf("GetUserByEmail: %w", store.ErrNotFound)
}

func jwtCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == service.CookieName {
			return c
		}
	}
	t.Fatal("jwt cookie not set")
	return nil
}

func TestSignupHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	tokens := newIssuer(t)

	t.Run("success", func(t *testing.T) {
		getUserByEmail = noSuchEmail
		hashPassword = func(pw string) (string, error) { return "hashed:" + pw, nil }
		var created *model.User
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			created = u
			out := *u
			out.ID = 7
			return &out, nil
		}
		notifier := &handlertest.FakeNotifier{}

		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/signup",
			map[string]string{"fullName": " Alice ", "email": "Alice@Example.com", "password": "secret1"})
		c.Request().Header.Set("Origin", "https://www.example.com")
		require.NoError(t, SignupHandler(&database.FakeDB{}, tokens, notifier)(c))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "alice@example.com", created.Email)
		require.Equal(t, "Alice", created.FullName)
		require.Equal(t, "hashed:secret1", created.PasswordHash)
		require.Equal(t, model.RoleUser, created.Role)

		var body api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, 7, body.User.ID)
		require.NotEmpty(t, body.Token)
		require.NotContains(t, rec.Body.String(), "hashed:")

		cookie := jwtCookie(t, rec.Result())
		require.Equal(t, body.Token, cookie.Value)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, "example.com", cookie.Domain)

		require.Len(t, notifier.Sent, 1)
		require.Equal(t, model.NotificationUser, notifier.Sent[0].Type)
		require.Equal(t, model.PriorityLow, notifier.Sent[0].Priority)
	})

	t.Run("fan-out failure does not block signup", func(t *testing.T) {
		getUserByEmail = noSuchEmail
		hashPassword = func(pw string) (string, error) { return "h", nil }
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			out := *u
			out.ID = 8
			return &out, nil
		}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/signup",
			map[string]string{"fullName": "Bob", "email": "bob@example.com", "password": "secret1"})
		notifier := &handlertest.FakeNotifier{CreateErr: fmt.Errorf("boom")}
		require.NoError(t, SignupHandler(&database.FakeDB{}, tokens, notifier)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/signup",
			map[string]string{"fullName": "Bob", "email": "bob@example.com", "password": "abc"})
		require.NoError(t, SignupHandler(&database.FakeDB{}, tokens, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Password must be at least 6 characters", handlertest.Message(rec))
	})

	t.Run("missing fields", func(t *testing.T) {
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/signup", map[string]string{"password": "secret1"})
		require.NoError(t, SignupHandler(&database.FakeDB{}, tokens, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "fullName is required; email is required", handlertest.Message(rec))
	})

	t.Run("email already registered", func(t *testing.T) {
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return &model.User{ID: 1, Email: email}, nil
		}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/signup",
			map[string]string{"fullName": "Bob", "email": "bob@example.com", "password": "secret1"})
		require.NoError(t, SignupHandler(&database.FakeDB{}, tokens, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Email already exists", handlertest.Message(rec))
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		getUserByEmail = noSuchEmail
		hashPassword = func(pw string) (string, error) { return "h", nil }
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			return nil, fmt.Errorf("CreateUser: %w", store.ErrConflict)
		}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/signup",
			map[string]string{"fullName": "Bob", "email": "bob@example.com", "password": "secret1"})
		require.NoError(t, SignupHandler(&database.FakeDB{}, tokens, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Email already exists", handlertest.Message(rec))
	})
}

type noRows struct{}

func (noRows) Scan(...any) error { return pgx.ErrNoRows }

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	tokens := newIssuer(t)

	t.Run("wrong credentials", func(t *testing.T) {
		authenticateUser = func(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "nobody@example.com", "password": "whatever"})
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Wrong credentials", handlertest.Message(rec))
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("malformed email reads as wrong credentials", func(t *testing.T) {
		authenticateUser = service.AuthenticateUser
		var gotEmail any
		db := &database.FakeDB{
			QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
				gotEmail = args[0]
				return noRows{}
			},
		}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "not-an-email", "password": "whatever"})
		require.NoError(t, LoginHandler(db, tokens)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Wrong credentials", handlertest.Message(rec))
		require.Equal(t, "not-an-email", gotEmail)
	})

	t.Run("store failure", func(t *testing.T) {
		authenticateUser = func(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
			return nil, fmt.Errorf("AuthenticateUser: connection reset")
		}
		c, _ := handlertest.JSON(e, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "a@example.com", "password": "whatever"})
		err := LoginHandler(&database.FakeDB{}, tokens)(c)
		require.Equal(t, http.StatusInternalServerError, handlertest.StatusOf(err))
	})

	t.Run("success", func(t *testing.T) {
		authenticateUser = func(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
			return handlertest.Member(), nil
		}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "mia@example.com", "password": "secret1"})
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var body api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "mia@example.com", body.User.Email)

		claims, err := tokens.Verify(jwtCookie(t, rec.Result()).Value)
		require.NoError(t, err)
		require.Equal(t, 2, claims.UserID)
	})
}

func TestLogoutHandler(t *testing.T) {
	e := handlertest.NewEcho()
	c, rec := handlertest.JSON(e, http.MethodPost, "/api/auth/logout", nil)
	require.NoError(t, LogoutHandler(newIssuer(t))(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Logged out successfully", handlertest.Message(rec))

	cookie := jwtCookie(t, rec.Result())
	require.Empty(t, cookie.Value)
	require.Less(t, cookie.MaxAge, 0)
}

func TestCheckAuthHandler(t *testing.T) {
	e := handlertest.NewEcho()
	c, rec := handlertest.JSON(e, http.MethodGet, "/api/auth/check", nil)
	handlertest.AsUser(c, handlertest.Admin())
	require.NoError(t, CheckAuthHandler()(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "admin", body.Role)
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	png := handlertest.File{Field: "profilePic", Name: "me.png", Content: []byte("fake")}

	t.Run("missing file", func(t *testing.T) {
		c, rec := handlertest.Multipart(e, http.MethodPut, "/api/auth/update-profile", nil)
		handlertest.AsUser(c, handlertest.Member())
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{}, &handlertest.FakeFiles{}, worker.Inline{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Profile picture is required", handlertest.Message(rec))
	})

	t.Run("rejected upload", func(t *testing.T) {
		c, rec := handlertest.Multipart(e, http.MethodPut, "/api/auth/update-profile", nil, png)
		handlertest.AsUser(c, handlertest.Member())
		files := &handlertest.FakeFiles{Err: upload.ErrUnsupported}
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{}, files, worker.Inline{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Unsupported file type", handlertest.Message(rec))
	})

	t.Run("replaces old picture", func(t *testing.T) {
		updateUserProfilePic = func(ctx context.Context, db database.DB, id int, url string) (*model.User, error) {
			u := handlertest.Member()
			u.ProfilePic = url
			return u, nil
		}
		me := handlertest.Member()
		me.ProfilePic = "/uploads/profiles/old.png"
		c, rec := handlertest.Multipart(e, http.MethodPut, "/api/auth/update-profile", nil, png)
		handlertest.AsUser(c, me)
		files := &handlertest.FakeFiles{}
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{}, files, worker.Inline{})(c))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"/uploads/profiles/me.png"}, files.Saved)
		require.Equal(t, []string{"/uploads/profiles/old.png"}, files.Removed)
		require.Contains(t, rec.Body.String(), `"profilePic":"/uploads/profiles/me.png"`)
	})

	t.Run("user vanished", func(t *testing.T) {
		updateUserProfilePic = func(ctx context.Context, db database.DB, id int, url string) (*model.User, error) {
			return nil, fmt.Errorf("UpdateUserProfilePic: %w", store.ErrNotFound)
		}
		c, rec := handlertest.Multipart(e, http.MethodPut, "/api/auth/update-profile", nil, png)
		handlertest.AsUser(c, handlertest.Member())
		files := &handlertest.FakeFiles{}
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{}, files, worker.Inline{})(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, files.Saved, files.Removed)
	})
}
