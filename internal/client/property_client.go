package client

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Propiedad is the read-only projection of a listing as served by the
// property service.
type Propiedad struct {
	ID            int64   `json:"id"`
	Codigo        string  `json:"codigo"`
	Titulo        string  `json:"titulo"`
	Direccion     string  `json:"direccion"`
	PrecioMensual float64 `json:"precio_mensual"`
	Divisa        string  `json:"divisa"`
	Disponible    bool    `json:"disponible"`
	PropietarioID int64   `json:"propietario_id"`
}

// PropertyClient fetches listing profiles from the property service.
type PropertyClient struct {
	base  string
	httpc *http.Client
}

// NewPropertyClient returns a client rooted at the service base URL,
// e.g. "http://localhost:8082".
func NewPropertyClient(base string, timeout time.Duration) *PropertyClient {
	return &PropertyClient{base: base, httpc: newHTTPClient(timeout)}
}

// GetProperty fetches one listing by id.  A missing listing returns
// (nil, nil); a transport failure returns a *CommunicationError.
func (c *PropertyClient) GetProperty(ctx context.Context, id int64) (*Propiedad, error) {
	var p Propiedad
	found, err := getJSON(ctx, c.httpc, "property-service", fmt.Sprintf("%s/api/propiedades/%d", c.base, id), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// ExistsProperty reports whether the listing exists, degrading any
// failure to false.
func (c *PropertyClient) ExistsProperty(ctx context.Context, id int64) bool {
	p, err := c.GetProperty(ctx, id)
	if err != nil {
		log.Printf("property lookup %d failed: %v", id, err)
		return false
	}
	return p != nil
}

// IsPropertyAvailable reports whether the listing exists and is open
// for new solicitudes, degrading any failure to false.
func (c *PropertyClient) IsPropertyAvailable(ctx context.Context, id int64) bool {
	p, err := c.GetProperty(ctx, id)
	if err != nil {
		log.Printf("property availability lookup %d failed: %v", id, err)
		return false
	}
	return p != nil && p.Disponible
}
