package service

import (
	"context"

	"github.com/rentify/rental-services/internal/client"
)

// The services depend on the lookup clients through these interfaces so
// tests can substitute fakes.  The concrete implementations live in
// internal/client.

// UserLookup resolves a remote user profile.  A missing user is
// (nil, nil); a transport failure is a *client.CommunicationError.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*client.Usuario, error)
}

// PropertyLookup resolves a remote listing profile with the same
// absent/failure semantics as UserLookup.
type PropertyLookup interface {
	GetProperty(ctx context.Context, id int64) (*client.Propiedad, error)
}

// DocumentLookup answers whether all of a user's documents are
// approved.  Transport failures degrade to false inside the client.
type DocumentLookup interface {
	HasApprovedDocuments(ctx context.Context, usuarioID int64) bool
}
