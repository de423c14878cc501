package projects

import (
	"time"

	"github.com/google/uuid"
)

type ProjectDraft struct {
	// Basic Information
	Name        string
	Description string

	// Ownership
	OwnerID string // External identity of the owning user

	// Scaffolding
	Template string // Template the project was generated from
}

type Project struct {
	ProjectDraft

	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
