package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionLesson = "l"
	actionShop   = "shop"
	actionWords  = "words"
)

// Lesson sub-actions.
const (
	lessonSelect  = "sel"
	lessonRemove  = "rm"
	lessonPrimary = "go"
	lessonRecord  = "rec"
	lessonStop    = "stop"
	lessonQuit    = "quit"
)

// Shop sub-actions.
const (
	shopBuyLife = "buy"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// lessonCallback is a decoded tap on a lesson keyboard. Occurrence ties the tap to
// the task occurrence the keyboard was rendered for.
type lessonCallback struct {
	Sub        string
	Occurrence uint64
	Index      int
}

// buildLessonCallback builds callback data for a lesson action. index is used by
// select and remove.
func buildLessonCallback(sub string, occurrence uint64, index ...int) string {
	params := []string{sub, strconv.FormatUint(occurrence, 10)}
	if len(index) > 0 {
		params = append(params, strconv.Itoa(index[0]))
	}
	return callbackData{Action: actionLesson, Params: params}.encode()
}

func parseLessonCallback(cd callbackData) (lessonCallback, bool) {
	if cd.Action != actionLesson || len(cd.Params) < 2 {
		return lessonCallback{}, false
	}

	occ, err := strconv.ParseUint(cd.Params[1], 10, 64)
	if err != nil {
		return lessonCallback{}, false
	}

	lc := lessonCallback{Sub: cd.Params[0], Occurrence: occ, Index: -1}

	switch lc.Sub {
	case lessonSelect, lessonRemove:
		if len(cd.Params) != 3 {
			return lessonCallback{}, false
		}
		idx, err := strconv.Atoi(cd.Params[2])
		if err != nil || idx < 0 {
			return lessonCallback{}, false
		}
		lc.Index = idx
	case lessonPrimary, lessonRecord, lessonStop, lessonQuit:
	default:
		return lessonCallback{}, false
	}

	return lc, true
}

// buildBuyLifeCallback builds callback data for buying a life in the shop.
func buildBuyLifeCallback() string {
	return callbackData{Action: actionShop, Params: []string{shopBuyLife}}.encode()
}

// buildWordsCallback builds callback data for switching the word list.
func buildWordsCallback(listType string) string {
	return callbackData{Action: actionWords, Params: []string{listType}}.encode()
}
