package telegram

import (
	"errors"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
	"github.com/aliskhannn/talup-bot/internal/service"
)

// userMessage maps a service error to the text shown in chat. fallback is used
// for errors the user cannot act on.
func userMessage(err error, fallback string) string {
	var visible *visibleError
	if errors.As(err, &visible) {
		return visible.text
	}

	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		return msgNotAuthorized
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, talupapi.ErrUnauthorized):
		return msgSessionExpired
	case errors.Is(err, service.ErrNoLives), errors.Is(err, talupapi.ErrNoLives):
		return msgNoLives
	case errors.Is(err, service.ErrNoTasks):
		return msgNoTasks
	case errors.Is(err, service.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, service.ErrInvalidPassword):
		return msgInvalidPassword
	case errors.Is(err, service.ErrInvalidUsername):
		return msgInvalidUsername
	case errors.Is(err, service.ErrInvalidName):
		return msgInvalidName
	case errors.Is(err, service.ErrInvalidProfile):
		return msgRegisterUsage
	case errors.Is(err, service.ErrUnsupportedImage):
		return msgUnsupportedImage
	}
	return fallback
}

// lessonToast maps an error of a lesson action to a callback toast.
func lessonToast(err error, s player.Snapshot) string {
	switch {
	case errors.Is(err, player.ErrStale),
		errors.Is(err, player.ErrDone),
		errors.Is(err, player.ErrNoTask),
		errors.Is(err, player.ErrWrongKind),
		errors.Is(err, player.ErrUnknownOption),
		errors.Is(err, service.ErrLessonOver):
		return toastStale
	case errors.Is(err, errNoVoice):
		return toastSendVoice
	case errors.Is(err, player.ErrNotReady):
		return notReadyToast(s)
	case errors.Is(err, player.ErrAnswered):
		return toastAlreadyAnswered
	case errors.Is(err, player.ErrLocked):
		return toastLocked
	case errors.Is(err, player.ErrAlreadyRecording):
		return toastRecording
	case errors.Is(err, player.ErrNotRecording):
		return toastNotRecording
	case errors.Is(err, player.ErrCheckInProgress):
		return toastCheckInProgress
	case errors.Is(err, player.ErrNoCapture):
		return toastRecordFirst
	case errors.Is(err, player.ErrCaptureMissing):
		return toastCaptureMissing
	case errors.Is(err, player.ErrPermissionDenied):
		return toastMicDenied
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, talupapi.ErrUnauthorized):
		return msgSessionExpired
	}
	return toastNetwork
}

func notReadyToast(s player.Snapshot) string {
	switch s.Task.Kind {
	case entities.KindSentenceShuffle:
		return toastBuildSentence
	case entities.KindSpokenReading:
		if s.Recording {
			return toastSendVoice
		}
		return toastRecordFirst
	}
	return toastSelectFirst
}
