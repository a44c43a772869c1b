package telegram

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/service"
)

func TestParseRegistration(t *testing.T) {
	args := []string{"a@b.kz", "secret1", "aigerim", "Айгерим", "Сейт",
		"gender=Female", "level=start", "aim=b1", "time=two", "goals=travel, fun,", "birth=05.03.2001"}

	reg, err := parseRegistration(args)
	if err != nil {
		t.Fatalf("parseRegistration: %v", err)
	}

	if reg.Email != "a@b.kz" || reg.Password != "secret1" || reg.Username != "aigerim" {
		t.Fatalf("credentials = %+v", reg)
	}
	if reg.Name != "Айгерим Сейт" {
		t.Fatalf("name = %q", reg.Name)
	}
	if reg.Gender != "female" || reg.CurrentLevel != "start" || reg.AimLevel != "B1" || reg.Time != "two" {
		t.Fatalf("options = %+v", reg)
	}
	if !slices.Equal(reg.Goals, []string{"travel", "fun"}) {
		t.Fatalf("goals = %v", reg.Goals)
	}
	if reg.BirthDate != "05.03.2001" {
		t.Fatalf("birth = %q", reg.BirthDate)
	}
}

func TestParseRegistration_Minimal(t *testing.T) {
	reg, err := parseRegistration([]string{"a@b.kz", "secret1", "aigerim"})
	if err != nil {
		t.Fatalf("parseRegistration: %v", err)
	}
	if reg.Name != "" || reg.Goals != nil || reg.AimLevel != "" {
		t.Fatalf("reg = %+v", reg)
	}
}

func TestParseRegistration_UnknownOption(t *testing.T) {
	_, err := parseRegistration([]string{"a@b.kz", "secret1", "aigerim", "city=Almaty"})
	if !errors.Is(err, errUnknownOption) {
		t.Fatalf("err = %v", err)
	}
}

func TestAvatarFile(t *testing.T) {
	tests := []struct {
		name     string
		msg      *tgbotapi.Message
		wantID   string
		wantName string
		wantType string
		wantOK   bool
	}{
		{
			name: "largest photo size",
			msg: &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{
				{FileID: "s", Width: 90, Height: 90},
				{FileID: "l", Width: 1280, Height: 1280},
				{FileID: "m", Width: 320, Height: 320},
			}},
			wantID:   "l",
			wantName: avatarPhotoName,
			wantType: avatarPhotoType,
			wantOK:   true,
		},
		{
			name:     "image document",
			msg:      &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "d", FileName: "me.png", MimeType: "image/png"}},
			wantID:   "d",
			wantName: "me.png",
			wantType: "image/png",
			wantOK:   true,
		},
		{
			name: "text",
			msg:  &tgbotapi.Message{Text: "/avatar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, img, ok := avatarFile(tt.msg)
			if ok != tt.wantOK || id != tt.wantID {
				t.Fatalf("avatarFile = %q, %v; want %q, %v", id, ok, tt.wantID, tt.wantOK)
			}
			if img.FileName != tt.wantName || img.ContentType != tt.wantType {
				t.Fatalf("image = %+v", img)
			}
		})
	}
}

func TestCaptionCommand(t *testing.T) {
	tests := map[string]string{
		"/avatar":             "avatar",
		"  /avatar@talup_bot": "avatar",
		"/avatar новое фото":  "avatar",
		"avatar":              "",
		"":                    "",
	}

	for in, want := range tests {
		if got := captionCommand(in); got != want {
			t.Fatalf("captionCommand(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUserMessage_Validation(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{service.ErrInvalidEmail, msgInvalidEmail},
		{fmt.Errorf("login: %w", service.ErrInvalidPassword), msgInvalidPassword},
		{service.ErrInvalidUsername, msgInvalidUsername},
		{service.ErrInvalidName, msgInvalidName},
		{fmt.Errorf("%w: aim=Z9", service.ErrInvalidProfile), msgRegisterUsage},
		{service.ErrUnsupportedImage, msgUnsupportedImage},
	}

	for _, tt := range tests {
		if got := userMessage(tt.err, msgInternalError); got != tt.want {
			t.Fatalf("userMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestAuthError_PasswordRejectedByBackend(t *testing.T) {
	err := authError(&talupapi.HTTPError{StatusCode: 400, Message: "Пароль слишком простой"}, msgPasswordFailed)
	if got := userMessage(err, msgInternalError); got != msgPasswordFailed+": Пароль слишком простой" {
		t.Fatalf("message = %q", got)
	}
}
