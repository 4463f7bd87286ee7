package echoapi

import (
	"github.com/pkg/errors"
)

// Notice variants
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

type (
	// Notice is the short notification shown to the user after an action.
	Notice struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Variant     string `json:"variant"`
	}

	Response struct {
		Notice *Notice     `json:"notice,omitempty"`
		Data   interface{} `json:"data,omitempty"`
	}

	ErrorResponse struct {
		Error  interface{} `json:"error"`
		Notice Notice      `json:"notice"`
	}

	// noticeError attaches the Notice to show when err reaches the error handler.
	noticeError struct {
		err    error
		notice Notice
	}
)

func newNotice(title, description string) *Notice {
	return &Notice{Title: title, Description: description, Variant: VariantDefault}
}

func withNotice(err error, title, description string) error {
	return &noticeError{err: err, notice: Notice{Title: title, Description: description, Variant: VariantDestructive}}
}

func (e *noticeError) Error() string { return e.err.Error() }
func (e *noticeError) Cause() error  { return e.err }
func (e *noticeError) Unwrap() error { return e.err }

// errorNotice returns the Notice attached to err, if any.
func errorNotice(err error) (Notice, bool) {
	var ne *noticeError
	if errors.As(err, &ne) {
		return ne.notice, true
	}
	return Notice{}, false
}
