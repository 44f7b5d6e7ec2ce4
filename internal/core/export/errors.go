package export

import (
	"errors"
	"fmt"
)

var (
	ErrShapeMismatch         = errors.New("rows and colors have different shapes")
	ErrAssetNotFound         = errors.New("referenced asset not found")
	ErrMissingWeekplanParams = errors.New("weekplan report needs weekdays and year")
	ErrNoFormatSelected      = errors.New("select at least one output format")
)

// Stage names an export step for error reporting.
type Stage string

const (
	StagePrompt   Stage = "prompt"
	StageValidate Stage = "validate"
	StageExtract  Stage = "extract"
	StageAnnotate Stage = "annotate"
	StageRender   Stage = "render"
	StageConvert  Stage = "convert"
	StagePersist  Stage = "persist"
	StageUpload   Stage = "upload"
)

// StageError is a failure of one export step.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Wrap tags err with a stage; nil stays nil.
func Wrap(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
