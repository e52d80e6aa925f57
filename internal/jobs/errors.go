package jobs

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrOrderTaken      = errors.New("display order already in use")
	ErrOptionInUse     = errors.New("option is referenced by submitted answers")
	ErrQuestionInUse   = errors.New("question is referenced by submitted answers")
	ErrJobInUse        = errors.New("job has applications")
	ErrPositionMissing = errors.New("position does not exist")
)
