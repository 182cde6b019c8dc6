package app

import (
	"context"

	"github.com/alexanderramin/timesheets/internal/importer"
)

type SubmitEntriesUseCase interface {
	SubmitEntries(ctx context.Context, reqs []EntryRequest) ([]EntryResult, error)
}

type ImportReferenceUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ReferenceSchema) (*ImportResult, error)
}
