package player

import (
	"strings"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// Select records an option. Single-choice kinds replace the previous selection;
// sentence shuffle appends the option unless it is already in the construction.
func (p *Player) Select(option string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectLocked(option)
}

// SelectAt selects the option at index i of the options shown for the given
// occurrence. A tap on an older occurrence returns ErrStale.
func (p *Player) SelectAt(occurrence uint64, i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.occurrence != occurrence {
		return ErrStale
	}
	if i < 0 || i >= len(p.options) {
		return ErrUnknownOption
	}
	return p.selectLocked(p.options[i])
}

// Remove takes the word at position i out of the constructed sentence.
func (p *Player) Remove(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeLocked(i)
}

// RemoveAt is Remove bound to an occurrence.
func (p *Player) RemoveAt(occurrence uint64, i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.occurrence != occurrence {
		return ErrStale
	}
	return p.removeLocked(i)
}

func (p *Player) selectLocked(option string) error {
	if err := p.checkEditable(); err != nil {
		return err
	}

	if !p.hasOption(option) {
		return ErrUnknownOption
	}

	if p.task.Kind != entities.KindSentenceShuffle {
		p.selected = option
		p.hasSelection = true
		return nil
	}

	for _, w := range p.constructed {
		if w == option {
			return nil
		}
	}
	p.constructed = append(p.constructed, option)
	return nil
}

func (p *Player) removeLocked(i int) error {
	if err := p.checkEditable(); err != nil {
		return err
	}
	if p.task.Kind != entities.KindSentenceShuffle {
		return ErrWrongKind
	}
	if i < 0 || i >= len(p.constructed) {
		return ErrUnknownOption
	}

	p.constructed = append(p.constructed[:i:i], p.constructed[i+1:]...)
	return nil
}

func (p *Player) checkEditable() error {
	if !p.loaded {
		return ErrNoTask
	}
	if !p.task.Kind.IsText() {
		return ErrWrongKind
	}
	if p.phase != PhaseIdle {
		return ErrAnswered
	}
	return nil
}

func (p *Player) hasOption(option string) bool {
	for _, o := range p.options {
		if o == option {
			return true
		}
	}
	return false
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}
