package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the exercise type of a task.
type Kind string

const (
	KindWordChoice      Kind = "multiple_choice_word"
	KindSentenceChoice  Kind = "multiple_choice_sentence"
	KindSentenceShuffle Kind = "sentence_shuffle"
	KindSpokenReading   Kind = "spoken_reading"
)

// BlankMarker marks the missing word in a sentence-choice prompt.
const BlankMarker = "___"

var (
	ErrUnknownKind  = errors.New("unknown task kind")
	ErrBodyMismatch = errors.New("task body does not match kind")
)

// wireKinds maps backend task type names onto kinds.
var wireKinds = map[string]Kind{
	"word_translation": KindWordChoice,
	"standard":         KindSentenceChoice,
	"sentence_shuffle": KindSentenceShuffle,
	"asr_reading":      KindSpokenReading,
}

// ParseKind resolves a backend task type. Canonical kind names are accepted as well.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if k, ok := wireKinds[s]; ok {
		return k, nil
	}

	switch k := Kind(s); k {
	case KindWordChoice, KindSentenceChoice, KindSentenceShuffle, KindSpokenReading:
		return k, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// WireName returns the task type name the backend expects in submit-result.
func (k Kind) WireName() string {
	for wire, kind := range wireKinds {
		if kind == k {
			return wire
		}
	}
	return string(k)
}

// IsText reports whether answers of this kind are judged locally.
func (k Kind) IsText() bool {
	return k == KindWordChoice || k == KindSentenceChoice || k == KindSentenceShuffle
}

// TaskBody is the kind-specific part of a task. The set of bodies is closed.
type TaskBody interface {
	kind() Kind
}

// ChoiceBody is the body of word and sentence multiple-choice tasks.
type ChoiceBody struct {
	Sentence          string   // may contain BlankMarker; empty for word choice
	CorrectAnswer     string   // canonical answer
	Options           []string // candidate answers as received
	Translation       string   // sentence translation
	TranslationTarget string   // word to translate
	word              bool
}

func (b ChoiceBody) kind() Kind {
	if b.word {
		return KindWordChoice
	}
	return KindSentenceChoice
}

// Revealed returns the sentence with the blank filled in by the correct answer.
func (b ChoiceBody) Revealed() string {
	return strings.Replace(b.Sentence, BlankMarker, b.CorrectAnswer, 1)
}

// ShuffleBody is the body of sentence reconstruction tasks.
type ShuffleBody struct {
	Translation   string   // sentence shown to the learner
	CorrectAnswer string   // full sentence in the target language
	Options       []string // word chips
}

func (ShuffleBody) kind() Kind { return KindSentenceShuffle }

// SpokenBody is the body of spoken reading tasks.
type SpokenBody struct {
	Text string // text to read aloud
}

func (SpokenBody) kind() Kind { return KindSpokenReading }

// Task is one exercise instance. It is read-only once constructed.
type Task struct {
	ID         string // identity of this occurrence
	WordID     int64
	Kind       Kind
	Difficulty string
	body       TaskBody
}

// NewWordChoiceBody builds a body for KindWordChoice.
func NewWordChoiceBody(target, correct string, options []string) ChoiceBody {
	return ChoiceBody{
		TranslationTarget: target,
		CorrectAnswer:     correct,
		Options:           options,
		word:              true,
	}
}

// NewSentenceChoiceBody builds a body for KindSentenceChoice.
func NewSentenceChoiceBody(sentence, target, translation, correct string, options []string) ChoiceBody {
	return ChoiceBody{
		Sentence:          sentence,
		TranslationTarget: target,
		Translation:       translation,
		CorrectAnswer:     correct,
		Options:           options,
	}
}

// NewTask validates that the body fits the kind and returns the task.
func NewTask(id string, wordID int64, kind Kind, difficulty string, body TaskBody) (Task, error) {
	if body == nil || body.kind() != kind {
		return Task{}, fmt.Errorf("%w: %s", ErrBodyMismatch, kind)
	}

	if b, ok := body.(ChoiceBody); ok {
		b.Options = append([]string(nil), b.Options...)
		body = b
	}
	if b, ok := body.(ShuffleBody); ok {
		b.Options = append([]string(nil), b.Options...)
		body = b
	}

	return Task{
		ID:         id,
		WordID:     wordID,
		Kind:       kind,
		Difficulty: difficulty,
		body:       body,
	}, nil
}

// Body returns the kind-specific body.
func (t Task) Body() TaskBody {
	return t.body
}

// CorrectAnswer returns the expected answer or, for spoken tasks, the expected utterance.
func (t Task) CorrectAnswer() string {
	switch b := t.body.(type) {
	case ChoiceBody:
		return b.CorrectAnswer
	case ShuffleBody:
		return b.CorrectAnswer
	case SpokenBody:
		return b.Text
	}
	return ""
}

// Options returns a copy of the answer options. Spoken tasks have none.
func (t Task) Options() []string {
	switch b := t.body.(type) {
	case ChoiceBody:
		return append([]string(nil), b.Options...)
	case ShuffleBody:
		return append([]string(nil), b.Options...)
	}
	return nil
}

// PromptText returns the text displayed as the main prompt.
func (t Task) PromptText() string {
	switch b := t.body.(type) {
	case ChoiceBody:
		if t.Kind == KindWordChoice {
			return b.TranslationTarget
		}
		return b.Sentence
	case ShuffleBody:
		return b.Translation
	case SpokenBody:
		return b.Text
	}
	return ""
}

// TranslationHint returns the auxiliary display text.
func (t Task) TranslationHint() string {
	switch b := t.body.(type) {
	case ChoiceBody:
		if t.Kind == KindWordChoice {
			return ""
		}
		return b.TranslationTarget
	case ShuffleBody:
		return ""
	}
	return ""
}
