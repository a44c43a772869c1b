package player

import (
	"context"
	"errors"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// Phase is the position of a task occurrence in the player lifecycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"      // selecting, or nothing captured yet
	PhaseRecording Phase = "recording" // microphone capture active
	PhaseCaptured  Phase = "captured"  // capture present, not yet judged
	PhaseChecking  Phase = "checking"  // judge call in flight
	PhaseRevealed  Phase = "revealed"  // answered; spoken tasks are locked with a result
	PhaseDone      Phase = "done"      // onAnswer delivered
)

// CheckResult is the remote judge verdict for a spoken task.
type CheckResult string

const (
	ResultPending   CheckResult = "pending"
	ResultCorrect   CheckResult = "correct"
	ResultIncorrect CheckResult = "incorrect"
)

// Illustration is the cosmetic picture shown next to a task.
type Illustration string

const (
	IllustrationBoy   Illustration = "boy"
	IllustrationGirl  Illustration = "girl"
	IllustrationWoman Illustration = "woman"
	IllustrationMan   Illustration = "man"
)

var illustrations = []Illustration{IllustrationBoy, IllustrationGirl, IllustrationWoman, IllustrationMan}

// Primary button labels.
const (
	LabelContinue = "Продолжить"
	LabelCheck    = "Проверить"
)

var (
	ErrNoTask           = errors.New("no task loaded")
	ErrWrongKind        = errors.New("action not supported by task kind")
	ErrAnswered         = errors.New("task already answered")
	ErrDone             = errors.New("answer already delivered")
	ErrUnknownOption    = errors.New("unknown option")
	ErrNotReady         = errors.New("answer is not ready for submission")
	ErrLocked           = errors.New("task is locked after check")
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("not recording")
	ErrCheckInProgress  = errors.New("check already in progress")
	ErrNoCapture        = errors.New("no captured audio")
	ErrCaptureMissing   = errors.New("captured audio file is missing")
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrStale            = errors.New("task changed while the operation was running")
)

// Capture references recorded audio.
type Capture struct {
	URI         string
	FileName    string // defaults to audio.m4a when empty
	ContentType string // defaults to audio/mp4 when empty
}

// Recorder grants microphone access and starts captures.
type Recorder interface {
	RequestPermission(ctx context.Context) (bool, error)
	Start(ctx context.Context) (Recording, error)
}

// Recording is an active microphone capture.
type Recording interface {
	Active(ctx context.Context) (bool, error)
	Stop(ctx context.Context) (Capture, error)
	Discard()
}

// Judge evaluates captured audio against the expected utterance.
type Judge interface {
	Judge(ctx context.Context, capture Capture, expected string) (bool, error)
}

// AnswerFunc receives the outcome of a task occurrence. A returned error keeps the
// occurrence open so the answer can be delivered again.
type AnswerFunc func(ctx context.Context, correct bool) error

// Snapshot is a read-only view of the session used for rendering.
type Snapshot struct {
	Task           entities.Task
	Occurrence     uint64
	Phase          Phase
	Options        []string
	Selected       string
	HasSelection   bool
	Constructed    []string
	Answered       bool
	Correct        bool // meaningful once Answered
	Locked         bool
	Recording      bool
	HasCapture     bool
	Result         CheckResult
	CanSubmit      bool
	PrimaryLabel   string
	PrimaryEnabled bool
	Illustration   Illustration
}

// IsSelected reports whether an option is chosen or already used in the construction.
func (s Snapshot) IsSelected(option string) bool {
	if s.Task.Kind == entities.KindSentenceShuffle {
		for _, w := range s.Constructed {
			if w == option {
				return true
			}
		}
		return false
	}
	return s.HasSelection && s.Selected == option
}
