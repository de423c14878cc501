package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	prefix = "project:"

	prefixByID    = prefix + "id:"
	prefixByOwner = prefix + "owner:"
)

type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new project.
func (r *Repository) Create(_ context.Context, draft *ProjectDraft) (*Project, error) {
	model := newProjectModel(draft)

	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if setErr := txn.Set(r.getKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store project: %w", setErr)
		}

		if crErr := r.createIndexes(txn, model); crErr != nil {
			return fmt.Errorf("failed to create project indexes: %w", crErr)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return newProject(model), nil
}

// GetByID retrieves a project by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Project, error) {
	var project *projectModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			project = found
		}

		return err
	})

	return newProject(project), err
}

// ListByOwner retrieves every project owned by a user.
func (r *Repository) ListByOwner(_ context.Context, ownerID string) ([]Project, error) {
	var result []Project

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixByOwner + ownerID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var projectID uuid.UUID
				if err := json.Unmarshal(val, &projectID); err != nil {
					return fmt.Errorf("failed to unmarshal project ID: %w", err)
				}

				project, err := r.getByID(txn, projectID)
				if err != nil {
					return err
				}

				result = append(result, *newProject(project))

				return nil
			}); err != nil {
				return fmt.Errorf("failed to unmarshal project: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to list projects: %w", err)
	}

	return result, nil
}

// Delete removes a project and its indexes.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		project, err := r.getByID(txn, id)
		if err != nil {
			return fmt.Errorf("failed to get project before deletion: %w", err)
		}

		if delErr := txn.Delete(r.getKey(id)); delErr != nil && !errors.Is(delErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to delete project: %w", delErr)
		}

		if rmErr := r.removeIndexes(txn, project); rmErr != nil {
			return fmt.Errorf("failed to remove project indexes: %w", rmErr)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*projectModel, error) {
	item, err := txn.Get(r.getKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var project projectModel
	if valErr := item.Value(func(val []byte) error { return json.Unmarshal(val, &project) }); valErr != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", valErr)
	}

	return &project, nil
}

func (r *Repository) getKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

func (r *Repository) ownerKey(project *projectModel) []byte {
	return []byte(
		prefixByOwner + project.OwnerID + ":" + strconv.FormatInt(project.CreatedAt.UnixNano(), 10),
	)
}

func (r *Repository) createIndexes(txn *badger.Txn, project *projectModel) error {
	data, err := json.Marshal(project.ID)
	if err != nil {
		return fmt.Errorf("failed to marshal project ID: %w", err)
	}
	if setErr := txn.Set(r.ownerKey(project), data); setErr != nil {
		return fmt.Errorf("failed to set owner index: %w", setErr)
	}

	return nil
}

func (r *Repository) removeIndexes(txn *badger.Txn, project *projectModel) error {
	if err := txn.Delete(r.ownerKey(project)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete owner index: %w", err)
	}

	return nil
}
