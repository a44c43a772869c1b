package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
)

type fakeAuthAPI struct {
	token string
	err   error
	reg   talupapi.Registration
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (talupapi.Session, error) {
	return talupapi.Session{Token: f.token}, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, reg talupapi.Registration) (talupapi.Session, error) {
	f.reg = reg
	return talupapi.Session{Token: f.token, Name: reg.Name}, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  1,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func newAuth(api AuthAPI, users *fakeUsers, tr *fakeTransactor) *AuthService {
	return NewAuthService(api, users, tr, usersFactory(users), zap.NewNop())
}

func TestAuthService_LoginStoresToken(t *testing.T) {
	users := newFakeUsers()
	tr := &fakeTransactor{}
	token := signedToken(t, time.Now().Add(time.Hour))
	s := newAuth(&fakeAuthAPI{token: token}, users, tr)

	if _, err := s.Login(context.Background(), 10, 20, " a@b.kz ", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tr.calls != 1 {
		t.Fatalf("login must run in a transaction")
	}

	got, err := s.Token(context.Background(), 10)
	if err != nil || got != token {
		t.Fatalf("Token = %q, %v", got, err)
	}

	u, _ := users.GetByID(context.Background(), 10)
	if u.ChatID != 20 {
		t.Fatalf("chat id = %d", u.ChatID)
	}
}

func TestAuthService_ReloginKeepsCreatedAt(t *testing.T) {
	users := newFakeUsers()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	users.users[10] = entities.User{ID: 10, ChatID: 20, Token: "old", CreatedAt: created}

	s := newAuth(&fakeAuthAPI{token: "new"}, users, &fakeTransactor{})
	if _, err := s.Login(context.Background(), 10, 20, "a@b.kz", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	u, _ := users.GetByID(context.Background(), 10)
	if u.Token != "new" || !u.CreatedAt.Equal(created) {
		t.Fatalf("user = %+v", u)
	}
}

func TestAuthService_LoginErrors(t *testing.T) {
	users := newFakeUsers()
	apiErr := &talupapi.HTTPError{StatusCode: 400, Message: "Неверный пароль"}
	s := newAuth(&fakeAuthAPI{err: apiErr}, users, &fakeTransactor{})

	if _, err := s.Login(context.Background(), 1, 1, "", "secret1"); !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("empty email err = %v", err)
	}

	_, err := s.Login(context.Background(), 1, 1, "a@b.kz", "wrongpw")
	if talupapi.Message(err) != "Неверный пароль" {
		t.Fatalf("err = %v", err)
	}
	if _, err := users.GetByID(context.Background(), 1); err == nil {
		t.Fatalf("failed login must not store a user")
	}
}

func TestAuthService_Token(t *testing.T) {
	tests := []struct {
		name    string
		stored  *entities.User
		wantErr error
	}{
		{name: "unknown user", wantErr: ErrNotAuthorized},
		{name: "logged out", stored: &entities.User{ID: 1}, wantErr: ErrNotAuthorized},
		{name: "opaque token", stored: &entities.User{ID: 1, Token: "opaque"}},
		{name: "expired jwt", stored: &entities.User{ID: 1, Token: signedToken(t, time.Now().Add(-time.Minute))}, wantErr: ErrSessionExpired},
		{name: "valid jwt", stored: &entities.User{ID: 1, Token: signedToken(t, time.Now().Add(time.Hour))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsers()
			if tt.stored != nil {
				users.users[tt.stored.ID] = *tt.stored
			}
			s := newAuth(&fakeAuthAPI{}, users, &fakeTransactor{})

			tok, err := s.Token(context.Background(), 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && tok != tt.stored.Token {
				t.Fatalf("token = %q", tok)
			}
			if errors.Is(tt.wantErr, ErrSessionExpired) {
				if u, _ := users.GetByID(context.Background(), 1); u.Token != "" {
					t.Fatalf("expired token not dropped")
				}
			}
		})
	}
}

func TestAuthService_RegisterAndLogout(t *testing.T) {
	users := newFakeUsers()
	api := &fakeAuthAPI{token: "tok"}
	s := newAuth(api, users, &fakeTransactor{})

	_, err := s.Register(context.Background(), 5, 5, talupapi.Registration{
		Email: "a@b.kz", Password: "secret1", Username: "aigerim",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if api.reg.Name != "aigerim" {
		t.Fatalf("name must default to username, got %q", api.reg.Name)
	}

	if err := s.Logout(context.Background(), 5); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := s.Token(context.Background(), 5); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err after logout = %v", err)
	}
}

func TestAuthService_RejectsInvalidForms(t *testing.T) {
	valid := talupapi.Registration{Email: "a@b.kz", Password: "secret1", Username: "aigerim"}

	tests := []struct {
		name    string
		login   [2]string
		reg     func(r *talupapi.Registration)
		wantErr error
	}{
		{name: "login email", login: [2]string{"a@b", "secret1"}, wantErr: ErrInvalidEmail},
		{name: "login short password", login: [2]string{"a@b.kz", "12345"}, wantErr: ErrInvalidPassword},
		{name: "register password with space", reg: func(r *talupapi.Registration) { r.Password = "sec ret1" }, wantErr: ErrInvalidPassword},
		{name: "register username", reg: func(r *talupapi.Registration) { r.Username = "ai" }, wantErr: ErrInvalidUsername},
		{name: "register name", reg: func(r *talupapi.Registration) { r.Name = "R2D2" }, wantErr: ErrInvalidName},
		{name: "register level", reg: func(r *talupapi.Registration) { r.CurrentLevel = "expert" }, wantErr: ErrInvalidProfile},
		{name: "register goal", reg: func(r *talupapi.Registration) { r.Goals = []string{"fun", "money"} }, wantErr: ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuthAPI{token: "tok"}
			s := newAuth(api, newFakeUsers(), &fakeTransactor{})

			var err error
			if tt.reg != nil {
				reg := valid
				tt.reg(&reg)
				_, err = s.Register(context.Background(), 1, 1, reg)
			} else {
				_, err = s.Login(context.Background(), 1, 1, tt.login[0], tt.login[1])
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if api.reg.Email != "" {
				t.Fatalf("invalid form reached the backend")
			}
		})
	}
}

func TestAuthService_RegisterFormatsName(t *testing.T) {
	api := &fakeAuthAPI{token: "tok"}
	s := newAuth(api, newFakeUsers(), &fakeTransactor{})

	_, err := s.Register(context.Background(), 1, 1, talupapi.Registration{
		Email:        " a@b.kz ",
		Password:     "secret1",
		Username:     "aigerim",
		Name:         "айгерим  сейт-кызы",
		Gender:       "female",
		Goals:        []string{"travel"},
		CurrentLevel: "start",
		AimLevel:     "B1",
		Time:         "two",
		BirthDate:    "05.03.2001",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if api.reg.Name != "Айгерим Сейт Кызы" || api.reg.Email != "a@b.kz" {
		t.Fatalf("registration = %+v", api.reg)
	}
	if api.reg.AimLevel != "B1" || len(api.reg.Goals) != 1 {
		t.Fatalf("profile fields dropped: %+v", api.reg)
	}
}
