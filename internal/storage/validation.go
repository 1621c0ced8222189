package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/photomatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRun    = errors.New("invalid run")
	ErrInvalidStatus = errors.New("invalid run status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun checks a run before it is written.
func validateRun(run *model.RunRecord) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	switch run.Status {
	case model.RunCompleted, model.RunFailed, model.RunDryRun:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, run.Status)
	}
	for _, f := range run.Files {
		if f.Sequence <= 0 || f.Source == "" || f.Target == "" {
			return fmt.Errorf("%w: bad renamed file entry %+v", ErrInvalidRun, f)
		}
	}
	return nil
}
