package client

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rentify/rental-services/internal/model"
)

// Usuario is the read-only projection of a user account as served by
// the user service.  It carries only what callers validate or embed.
type Usuario struct {
	ID        int64               `json:"id"`
	Pnombre   string              `json:"pnombre"`
	Papellido string              `json:"papellido"`
	Email     string              `json:"email"`
	Ntelefono string              `json:"ntelefono"`
	Rol       model.Rol           `json:"rol"`
	Estado    model.EstadoUsuario `json:"estado"`
}

// Activo reports whether the remote account is usable.
func (u *Usuario) Activo() bool { return u.Estado == model.UsuarioActivo }

// UserClient fetches user profiles from the user service.
type UserClient struct {
	base  string
	httpc *http.Client
}

// NewUserClient returns a client rooted at the service base URL, e.g.
// "http://localhost:8081".
func NewUserClient(base string, timeout time.Duration) *UserClient {
	return &UserClient{base: base, httpc: newHTTPClient(timeout)}
}

// GetUser fetches one user by id.  A missing user returns (nil, nil);
// a transport failure returns a *CommunicationError.
func (c *UserClient) GetUser(ctx context.Context, id int64) (*Usuario, error) {
	var u Usuario
	found, err := getJSON(ctx, c.httpc, "user-service", fmt.Sprintf("%s/api/usuarios/%d", c.base, id), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// ExistsUser reports whether the user exists, degrading any failure to
// false.  Use GetUser directly when "could not ask" must be surfaced.
func (c *UserClient) ExistsUser(ctx context.Context, id int64) bool {
	u, err := c.GetUser(ctx, id)
	if err != nil {
		log.Printf("user lookup %d failed: %v", id, err)
		return false
	}
	return u != nil
}
