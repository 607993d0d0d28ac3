package client

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// DocumentClient asks the document service about a user's verification
// documents.
type DocumentClient struct {
	base  string
	httpc *http.Client
}

// NewDocumentClient returns a client rooted at the service base URL,
// e.g. "http://localhost:8083".
func NewDocumentClient(base string, timeout time.Duration) *DocumentClient {
	return &DocumentClient{base: base, httpc: newHTTPClient(timeout)}
}

// HasApprovedDocuments reports whether every document the user uploaded
// is approved (and at least one exists).  Any failure, including a
// transport error, degrades to false: an unverifiable user is treated
// as unapproved rather than blocking the whole request.
func (c *DocumentClient) HasApprovedDocuments(ctx context.Context, usuarioID int64) bool {
	var approved bool
	url := fmt.Sprintf("%s/api/documentos/usuario/%d/verificar-aprobados", c.base, usuarioID)
	found, err := getJSON(ctx, c.httpc, "document-service", url, &approved)
	if err != nil {
		log.Printf("document verification for user %d failed: %v", usuarioID, err)
		return false
	}
	return found && approved
}
