package mkdom

import (
	stderrors "errors"

	"github.com/vango-dev/mkdom/internal/errors"
)

// Sentinel errors reported by Err(). They match any error carrying the same
// code, so hosts may attach detail and still satisfy errors.Is.
var (
	// ErrElementNotFound is recorded when a handle wraps no element.
	ErrElementNotFound error = errors.New("E001")

	// ErrDetachedNode is recorded when an operation needs a parent the
	// element does not have.
	ErrDetachedNode error = errors.New("E002")

	// ErrInvalidSelector is returned by hosts for selectors they cannot compile.
	ErrInvalidSelector error = errors.New("E003")

	// ErrMarkup is returned by hosts when inner content fails to parse.
	ErrMarkup error = errors.New("E004")

	// ErrHierarchy is returned by hosts for impossible insertions.
	ErrHierarchy error = errors.New("E005")

	// ErrHost wraps any other host failure.
	ErrHost error = errors.New("E010")

	// ErrListener is returned when a listener cannot be bound.
	ErrListener error = errors.New("E011")
)

// hostError wraps err in ErrHost unless it already carries a code.
func hostError(op string, err error) error {
	if err == nil {
		return nil
	}
	var coded *errors.Error
	if stderrors.As(err, &coded) && coded.Code != "" {
		return err
	}
	return errors.New("E010").WithDetail(op).Wrap(err)
}
