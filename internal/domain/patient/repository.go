package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. The store assigns ID and timestamps;
	// the entity is populated with them on return.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. A missing row is not an
	// error: it returns (nil, nil).
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// Update applies the non-nil fields of cmd to an existing record and
	// returns the updated entity. Returns ErrPatientNotFound if the id does
	// not exist.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete removes the record permanently. Deleting an id that does not
	// exist is not reported specially.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns every patient, newest first.
	List(ctx context.Context) ([]*Patient, error)

	// Search runs a case-insensitive substring match over first name, last
	// name and email, OR-combined, newest first. An empty query matches
	// everything.
	Search(ctx context.Context, query string) ([]*Patient, error)
}
