// Package importer reconciles bulk CSV stock uploads against the inventory.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	appsales "github.com/stocktrack/backend/internal/application/sales"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/infrastructure/csvimport"
)

// ImportResult reports how many rows were reconciled
type ImportResult struct {
	Updated int `json:"updated"`
	Created int `json:"created"`
}

// ImportService loads tabular stock files. Reconciliation is all-or-nothing:
// every row's update and every staged creation commit in one transaction, or
// none do.
type ImportService struct {
	txScope  appsales.TransactionScope
	recorder audit.Recorder
}

// NewImportService creates a new ImportService
func NewImportService(txScope appsales.TransactionScope, recorder audit.Recorder) *ImportService {
	return &ImportService{txScope: txScope, recorder: recorder}
}

// Import parses the file and reconciles each row: an exact name match adds
// the row's total to the item's total and remaining and overwrites its price;
// anything else is staged and batch-created at the end, tagged with the
// importing user. A file with no usable rows fails with an invalid-import
// error.
func (s *ImportService) Import(ctx context.Context, actor audit.Actor, file io.Reader) (*ImportResult, error) {
	rows, err := csvimport.Parse(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrInvalidImport
	}

	var (
		updated []string
		staged  []*inventory.Item
	)

	err = s.txScope.Execute(ctx, func(repos appsales.TransactionalRepositories) error {
		updated = updated[:0]
		staged = staged[:0]

		for _, row := range rows {
			existing, err := repos.ItemRepo().FindByName(ctx, row.Name)
			if err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return err
				}
				item, err := inventory.NewItem(row.Name, row.Total, row.Price, nil, actorRef(actor))
				if err != nil {
					return shared.ErrInvalidImport
				}
				if row.Photo != "" {
					item.SetPhotoKey(row.Photo)
				}
				staged = append(staged, item)
				continue
			}

			if err := repos.ItemRepo().AddStock(ctx, existing.ID, row.Total, row.Price); err != nil {
				return err
			}
			updated = append(updated, existing.Code)
		}

		if len(staged) > 0 {
			return repos.ItemRepo().CreateBatch(ctx, staged)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, code := range updated {
		s.recorder.Record(ctx, actor, fmt.Sprintf("updated inventory item with code - '%s'", code))
	}
	for _, item := range staged {
		s.recorder.Record(ctx, actor, fmt.Sprintf("added new inventory item with code - '%s'", item.Code))
	}

	return &ImportResult{Updated: len(updated), Created: len(staged)}, nil
}

// actorRef converts the actor's ID to a nullable creator reference
func actorRef(actor audit.Actor) *uuid.UUID {
	if actor.ID == uuid.Nil {
		return nil
	}
	id := actor.ID
	return &id
}
