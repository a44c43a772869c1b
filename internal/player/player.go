// Package player renders one lesson task at a time and judges the learner's answer.
//
// Session state lives for one task occurrence: Load resets it wholesale. Text kinds are
// judged locally, spoken reading is delegated to a remote Judge. The outcome reaches
// the caller through the AnswerFunc exactly once per occurrence.
package player

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// Option configures a Player.
type Option func(*Player)

// WithPicker replaces the random source used to choose illustrations.
func WithPicker(pick func(n int) int) Option {
	return func(p *Player) {
		p.pick = pick
	}
}

// Player holds the session state of the current task occurrence.
type Player struct {
	mu       sync.Mutex
	recorder Recorder
	judge    Judge
	onAnswer AnswerFunc
	logger   *zap.Logger
	pick     func(n int) int

	loaded       bool
	task         entities.Task
	occurrence   uint64
	options      []string
	phase        Phase
	selected     string
	hasSelection bool
	constructed  []string
	recording    Recording
	capture      *Capture
	result       CheckResult
	illustration Illustration
}

// New creates a player without a task. Call Load before any action.
func New(recorder Recorder, judge Judge, onAnswer AnswerFunc, logger *zap.Logger, opts ...Option) *Player {
	p := &Player{
		recorder: recorder,
		judge:    judge,
		onAnswer: onAnswer,
		logger:   logger,
		pick:     rand.Intn,
		phase:    PhaseIdle,
		result:   ResultPending,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load replaces the task and resets all session state. An active recording is
// discarded and responses for the previous occurrence are dropped.
func (p *Player) Load(task entities.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.recording != nil {
		p.recording.Discard()
	}

	p.loaded = true
	p.occurrence++
	p.task = task
	p.options = CleanOptions(task.Options())
	p.phase = PhaseIdle
	p.selected = ""
	p.hasSelection = false
	p.constructed = []string{}
	p.recording = nil
	p.capture = nil
	p.result = ResultPending
	p.illustration = illustrations[p.pick(len(illustrations))]

	p.logger.Debug("task loaded",
		zap.String("task_id", task.ID),
		zap.String("kind", string(task.Kind)),
		zap.Uint64("occurrence", p.occurrence),
	)
}

// Snapshot returns the current session view.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	answered := p.phase == PhaseRevealed || p.phase == PhaseDone
	s := Snapshot{
		Task:         p.task,
		Occurrence:   p.occurrence,
		Phase:        p.phase,
		Options:      append([]string(nil), p.options...),
		Selected:     p.selected,
		HasSelection: p.hasSelection,
		Constructed:  append([]string{}, p.constructed...),
		Answered:     answered,
		Recording:    p.phase == PhaseRecording,
		HasCapture:   p.capture != nil,
		Result:       p.result,
		CanSubmit:    p.canSubmit(),
		Illustration: p.illustration,
	}

	if p.task.Kind == entities.KindSpokenReading {
		s.Locked = answered
		s.Correct = p.result == ResultCorrect
		if p.result == ResultPending {
			s.PrimaryLabel = LabelCheck
			s.PrimaryEnabled = p.phase == PhaseCaptured
		} else {
			s.PrimaryLabel = LabelContinue
			s.PrimaryEnabled = p.phase == PhaseRevealed
		}
		return s
	}

	s.Correct = p.isCorrect()
	s.PrimaryLabel = LabelContinue
	s.PrimaryEnabled = p.phase == PhaseRevealed || (p.phase == PhaseIdle && s.CanSubmit)
	return s
}

// Primary activates the main button. Text kinds commit in two steps: the first call
// reveals correctness, the second delivers it. Spoken tasks check the capture first
// and deliver the remote verdict on the next call.
func (p *Player) Primary(ctx context.Context) error {
	p.mu.Lock()

	if !p.loaded {
		p.mu.Unlock()
		return ErrNoTask
	}

	if p.task.Kind == entities.KindSpokenReading {
		switch p.phase {
		case PhaseCaptured:
			p.mu.Unlock()
			return p.Check(ctx)
		case PhaseRevealed:
			return p.deliver(ctx, p.result == ResultCorrect)
		case PhaseDone:
			p.mu.Unlock()
			return ErrDone
		default:
			p.mu.Unlock()
			return ErrNotReady
		}
	}

	switch p.phase {
	case PhaseIdle:
		defer p.mu.Unlock()
		if !p.canSubmit() {
			return ErrNotReady
		}
		p.phase = PhaseRevealed
		return nil
	case PhaseRevealed:
		return p.deliver(ctx, p.isCorrect())
	default:
		p.mu.Unlock()
		return ErrDone
	}
}

// deliver must be called with p.mu held; it releases the lock before calling onAnswer.
func (p *Player) deliver(ctx context.Context, correct bool) error {
	prev := p.phase
	occ := p.occurrence
	taskID := p.task.ID
	p.phase = PhaseDone
	p.mu.Unlock()

	if err := p.onAnswer(ctx, correct); err != nil {
		p.mu.Lock()
		if p.occurrence == occ && p.phase == PhaseDone {
			p.phase = prev
		}
		p.mu.Unlock()

		p.logger.Warn("answer delivery failed",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (p *Player) canSubmit() bool {
	switch p.task.Kind {
	case entities.KindSentenceShuffle:
		return len(p.constructed) == len(p.options)
	case entities.KindWordChoice, entities.KindSentenceChoice:
		return p.hasSelection
	}
	return false
}

// userAnswer is the candidate answer of text kinds.
func (p *Player) userAnswer() string {
	if p.task.Kind == entities.KindSentenceShuffle {
		return joinWords(p.constructed)
	}
	return p.selected
}

func (p *Player) isCorrect() bool {
	if !p.task.Kind.IsText() {
		return false
	}
	return IsCorrect(p.userAnswer(), p.task.CorrectAnswer())
}
