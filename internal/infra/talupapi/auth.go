package talupapi

import (
	"context"
	"errors"
	"net/http"
)

var ErrNoToken = errors.New("backend returned no token")

// Registration is the sign-up form. BirthDate is formatted as DD.MM.YYYY.
type Registration struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Gender       string   `json:"gender,omitempty"`
	Language     string   `json:"language,omitempty"`
	BirthDate    string   `json:"birthDate,omitempty"`
	Goals        []string `json:"goals,omitempty"`
	CurrentLevel string   `json:"currentLevel,omitempty"`
	AimLevel     string   `json:"aimLevel,omitempty"`
	Time         string   `json:"time,omitempty"`
	Avatar       string   `json:"avatar"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string
	Name  string
	Email string
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.authenticate(ctx, "/auth/login", credentials{Email: email, Password: password})
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, reg Registration) (Session, error) {
	return c.authenticate(ctx, "/auth/register", reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (Session, error) {
	r, err := newJSONRequest(http.MethodPost, path, "", body)
	if err != nil {
		return Session{}, err
	}

	var resp tokenResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return Session{}, err
	}
	if resp.Token == "" {
		return Session{}, ErrNoToken
	}

	return Session{Token: resp.Token, Name: resp.Name, Email: resp.Email}, nil
}
