package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/autocrea/autocrea/pkg/badgerfx"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	prefix = "deployment:"

	prefixByID      = prefix + "id:"
	prefixByProject = prefix + "project:"
	prefixByUser    = prefix + "user:"
	prefixActive    = prefix + "active:"
)

// Repository stores deployment records. Beside the primary key it
// maintains project and user indexes plus an "active" index that holds
// exactly the non-terminal deployments, which is the set the poller
// scans every cycle.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new deployment.
func (r *Repository) Create(_ context.Context, deployment *DeploymentDraft) (*Deployment, error) {
	model := newDeploymentModel(deployment)

	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deployment: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if setErr := txn.Set(r.getKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store deployment: %w", setErr)
		}

		if crErr := r.writeIndexes(txn, model); crErr != nil {
			return fmt.Errorf("failed to create deployment indexes: %w", crErr)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}

	return newDeployment(model), nil
}

// GetByID retrieves a deployment by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Deployment, error) {
	var deployment *deploymentModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			deployment = found
		}

		return err
	})

	return newDeployment(deployment), err
}

// Update applies updater to the stored record inside a single
// transaction, so a concurrent writer can never interleave with the
// read-modify-write.
func (r *Repository) Update(_ context.Context, id uuid.UUID, updater func(*Deployment) error) (*Deployment, error) {
	var updated *deploymentModel

	err := r.db.Update(func(txn *badger.Txn) error {
		old, err := r.getByID(txn, id)
		if err != nil {
			return fmt.Errorf("failed to get deployment before update: %w", err)
		}

		deployment := newDeployment(old)

		if updErr := updater(deployment); updErr != nil {
			return updErr
		}

		if deployment.ProjectID != old.ProjectID {
			return fmt.Errorf("cannot change deployment ProjectID (old=%s new=%s)", old.ProjectID, deployment.ProjectID)
		}
		if deployment.UserID != old.UserID {
			return fmt.Errorf("cannot change deployment UserID (old=%s new=%s)", old.UserID, deployment.UserID)
		}

		model := newDeploymentUpdateModel(old, &deployment.DeploymentDraft)

		data, err := json.Marshal(model)
		if err != nil {
			return fmt.Errorf("failed to marshal deployment: %w", err)
		}

		if setErr := txn.Set(r.getKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to update deployment: %w", setErr)
		}

		if crErr := r.writeIndexes(txn, model); crErr != nil {
			return fmt.Errorf("failed to update deployment indexes: %w", crErr)
		}

		updated = model

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update deployment: %w", err)
	}

	return newDeployment(updated), nil
}

// Delete removes a deployment and its indexes.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		deployment, err := r.getByID(txn, id)
		if err != nil {
			return fmt.Errorf("failed to get deployment before deletion: %w", err)
		}

		if delErr := txn.Delete(r.getKey(id)); delErr != nil && !errors.Is(delErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to delete deployment: %w", delErr)
		}

		if rmErr := r.removeIndexes(txn, deployment); rmErr != nil {
			return fmt.Errorf("failed to remove deployment indexes: %w", rmErr)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete deployment: %w", err)
	}

	return nil
}

// List retrieves deployments matching the optional predicate.
func (r *Repository) List(_ context.Context, predicate func(*Deployment) bool) ([]Deployment, error) {
	var result []Deployment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixByID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var deployment deploymentModel
				if err := json.Unmarshal(val, &deployment); err != nil {
					return fmt.Errorf("failed to unmarshal deployment: %w", err)
				}

				domain := newDeployment(&deployment)
				if predicate != nil && !predicate(domain) {
					return nil
				}

				result = append(result, *domain)

				return nil
			}); err != nil {
				return fmt.Errorf("failed to unmarshal deployment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to list deployments: %w", err)
	}

	return result, nil
}

// ListByProject retrieves deployments for a project, newest first.
func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]Deployment, error) {
	return r.listByIndex(ctx, r.getProjectPrefix(projectID))
}

// ListByUser retrieves deployments created by a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Deployment, error) {
	return r.listByIndex(ctx, []byte(prefixByUser+userID+":"))
}

// ListActiveIDs returns the ids of every non-terminal deployment.
func (r *Repository) ListActiveIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixActive)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := uuid.Parse(string(it.Item().Key()[len(prefix):]))
			if err != nil {
				return fmt.Errorf("failed to parse active index key: %w", err)
			}

			ids = append(ids, id)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active deployments: %w", err)
	}

	return ids, nil
}

func (r *Repository) listByIndex(_ context.Context, indexPrefix []byte) ([]Deployment, error) {
	var result []Deployment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, indexPrefix...), badgerfx.SeekEnd)
		for it.Seek(seek); it.ValidForPrefix(indexPrefix); it.Next() {
			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var deploymentID uuid.UUID
				if err := json.Unmarshal(val, &deploymentID); err != nil {
					return fmt.Errorf("failed to unmarshal deployment ID: %w", err)
				}

				deployment, err := r.getByID(txn, deploymentID)
				if err != nil {
					return err
				}

				result = append(result, *newDeployment(deployment))

				return nil
			}); err != nil {
				return fmt.Errorf("failed to unmarshal deployment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to list deployments: %w", err)
	}

	return result, nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*deploymentModel, error) {
	item, err := txn.Get(r.getKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment: %w", err)
	}

	var deployment deploymentModel
	if valErr := item.Value(func(val []byte) error { return json.Unmarshal(val, &deployment) }); valErr != nil {
		return nil, fmt.Errorf("failed to unmarshal deployment: %w", valErr)
	}

	return &deployment, nil
}

// getKey generates the key for storing a deployment.
func (r *Repository) getKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

// getProjectPrefix generates the prefix for project-specific deployments.
func (r *Repository) getProjectPrefix(projectID uuid.UUID) []byte {
	return []byte(prefixByProject + projectID.String() + ":")
}

func (r *Repository) projectKey(deployment *deploymentModel) []byte {
	return []byte(
		prefixByProject + deployment.ProjectID.String() + ":" + strconv.FormatInt(deployment.CreatedAt.UnixNano(), 10),
	)
}

func (r *Repository) userKey(deployment *deploymentModel) []byte {
	return []byte(
		prefixByUser + deployment.UserID + ":" + strconv.FormatInt(deployment.CreatedAt.UnixNano(), 10),
	)
}

func (r *Repository) activeKey(deployment *deploymentModel) []byte {
	return []byte(prefixActive + deployment.ID.String())
}

// writeIndexes creates or refreshes the indexes for a deployment. The
// active index entry exists exactly while the record is non-terminal.
func (r *Repository) writeIndexes(txn *badger.Txn, deployment *deploymentModel) error {
	data, err := json.Marshal(deployment.ID)
	if err != nil {
		return fmt.Errorf("failed to marshal deployment ID: %w", err)
	}

	if setErr := txn.Set(r.projectKey(deployment), data); setErr != nil {
		return fmt.Errorf("failed to set project index: %w", setErr)
	}

	if setErr := txn.Set(r.userKey(deployment), data); setErr != nil {
		return fmt.Errorf("failed to set user index: %w", setErr)
	}

	if deployment.Status.Terminal() {
		if delErr := txn.Delete(r.activeKey(deployment)); delErr != nil && !errors.Is(delErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to delete active index: %w", delErr)
		}
		return nil
	}

	if setErr := txn.Set(r.activeKey(deployment), data); setErr != nil {
		return fmt.Errorf("failed to set active index: %w", setErr)
	}

	return nil
}

// removeIndexes removes every index entry for a deployment.
func (r *Repository) removeIndexes(txn *badger.Txn, deployment *deploymentModel) error {
	for _, key := range [][]byte{
		r.projectKey(deployment),
		r.userKey(deployment),
		r.activeKey(deployment),
	} {
		if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to delete deployment index: %w", err)
		}
	}

	return nil
}
