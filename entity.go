package trader

import "github.com/google/uuid"

// ID is the durable identity carried by every ledger entity. Identities are
// assigned at construction and never change; persistence collaborators load
// and save entities by ID.
type ID string

// NewID returns a fresh entity identity.
func NewID() ID { return ID(uuid.NewString()) }

// Entity is anything with a durable identity.
type Entity interface {
	ID() ID
}

// Repository is the external persistence collaborator. The core defines
// only entity shapes and relationships; the storage format is the
// repository's concern.
type Repository interface {
	// Load returns the entity stored under id.
	Load(id ID) (Entity, error)
	// Save stores the entity under its identity, replacing any previous state.
	Save(entity Entity) error
}
