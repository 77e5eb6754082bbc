package storage

import (
	"context"
	"errors"

	"txHumanizer/internal/model"
)

// Storage defines a sink for humanized transactions and failures.
type Storage interface {
	PutSummaryBatch(ctx context.Context, records []model.SummaryRecord) error
	PutErrorBatch(ctx context.Context, errs []model.DecodeError) error
}

// Multi writes every batch to each sink in order.
type Multi []Storage

func (m Multi) PutSummaryBatch(ctx context.Context, records []model.SummaryRecord) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.PutSummaryBatch(ctx, records))
	}
	return errors.Join(errs...)
}

func (m Multi) PutErrorBatch(ctx context.Context, decodeErrs []model.DecodeError) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.PutErrorBatch(ctx, decodeErrs))
	}
	return errors.Join(errs...)
}
