package player

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// StartRecording starts a microphone capture for a spoken task. A previous capture
// is dropped. Not allowed once the task is locked.
func (p *Player) StartRecording(ctx context.Context) error {
	p.mu.Lock()
	if err := p.checkSpoken(); err != nil {
		p.mu.Unlock()
		return err
	}
	switch p.phase {
	case PhaseRecording:
		p.mu.Unlock()
		return ErrAlreadyRecording
	case PhaseChecking:
		p.mu.Unlock()
		return ErrCheckInProgress
	}
	occ := p.occurrence
	p.mu.Unlock()

	granted, err := p.recorder.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("request microphone permission: %w", err)
	}
	if !granted {
		p.logger.Debug("microphone permission denied", zap.Uint64("occurrence", occ))
		return ErrPermissionDenied
	}

	rec, err := p.recorder.Start(ctx)
	if err != nil {
		return fmt.Errorf("start recording: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.occurrence != occ || (p.phase != PhaseIdle && p.phase != PhaseCaptured) {
		rec.Discard()
		return ErrStale
	}

	p.capture = nil
	p.result = ResultPending
	p.recording = rec
	p.phase = PhaseRecording
	return nil
}

// StopRecording finishes the active capture. A recorder that reports it is no
// longer active is ignored.
func (p *Player) StopRecording(ctx context.Context) error {
	p.mu.Lock()
	if err := p.checkSpoken(); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.phase != PhaseRecording || p.recording == nil {
		p.mu.Unlock()
		return ErrNotRecording
	}
	rec := p.recording
	occ := p.occurrence
	p.mu.Unlock()

	active, err := rec.Active(ctx)
	if err != nil || !active {
		p.logger.Warn("recorder is not active, stop skipped",
			zap.Uint64("occurrence", occ),
			zap.Error(err),
		)
		return nil
	}

	capture, err := rec.Stop(ctx)
	if err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.occurrence != occ || p.recording != rec {
		return ErrStale
	}

	p.capture = &capture
	p.recording = nil
	p.phase = PhaseCaptured

	p.logger.Debug("audio captured",
		zap.String("task_id", p.task.ID),
		zap.String("uri", capture.URI),
	)
	return nil
}

// Check sends the capture and the expected text to the judge. On success the task
// is locked with the verdict; on failure the capture is kept so the check can be retried.
func (p *Player) Check(ctx context.Context) error {
	p.mu.Lock()
	if err := p.checkSpoken(); err != nil {
		p.mu.Unlock()
		return err
	}
	switch {
	case p.phase == PhaseChecking:
		p.mu.Unlock()
		return ErrCheckInProgress
	case p.phase != PhaseCaptured || p.capture == nil:
		p.mu.Unlock()
		return ErrNoCapture
	}

	capture := *p.capture
	expected := expectedUtterance(p.task.CorrectAnswer())
	occ := p.occurrence
	taskID := p.task.ID
	p.phase = PhaseChecking
	p.mu.Unlock()

	correct, err := p.judge.Judge(ctx, capture, expected)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.occurrence != occ {
		p.logger.Info("dropping judge response for a replaced task",
			zap.String("task_id", taskID),
		)
		return ErrStale
	}

	if err != nil {
		p.phase = PhaseCaptured
		p.logger.Error("speech check failed",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return fmt.Errorf("check speech: %w", err)
	}

	if correct {
		p.result = ResultCorrect
	} else {
		p.result = ResultIncorrect
	}
	p.phase = PhaseRevealed
	return nil
}

// checkSpoken must be called with p.mu held.
func (p *Player) checkSpoken() error {
	if !p.loaded {
		return ErrNoTask
	}
	if p.task.Kind != entities.KindSpokenReading {
		return ErrWrongKind
	}
	if p.phase == PhaseRevealed || p.phase == PhaseDone {
		return ErrLocked
	}
	return nil
}
