// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/photomatch/internal/model"
)

// RunHistory records rename runs and reads them back.
type RunHistory interface {
	SaveRun(ctx context.Context, run *model.RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	GetRun(ctx context.Context, id string) (*model.RunRecord, error)
	Close() error
}
