package model

import "time"

// Mensaje is a contact-form message.  UsuarioID is optional: guests can
// write without an account, in which case it stays nil.
type Mensaje struct {
	ID         int64     `json:"id"`                   // mensajes_contacto.id
	UsuarioID  *int64    `json:"usuario_id,omitempty"` // mensajes_contacto.usuario_id (nullable)
	Nombre     string    `json:"nombre"`               // mensajes_contacto.nombre
	Email      string    `json:"email"`                // mensajes_contacto.email
	Asunto     string    `json:"asunto"`               // mensajes_contacto.asunto
	Mensaje    string    `json:"mensaje"`              // mensajes_contacto.mensaje
	Respondido bool      `json:"respondido"`           // mensajes_contacto.respondido
	Respuesta  string    `json:"respuesta,omitempty"`  // mensajes_contacto.respuesta
	Fcreacion  time.Time `json:"fcreacion"`            // mensajes_contacto.fcreacion
}
