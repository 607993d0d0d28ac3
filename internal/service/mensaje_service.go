package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
)

// MensajeService manages contact-form messages.  Guests may write
// without an account; when a usuario_id is supplied it is checked
// best effort against the user service.
type MensajeService struct {
	mensajes *repository.MensajeRepo
	users    UserLookup
}

func NewMensajeService(mensajes *repository.MensajeRepo, users UserLookup) *MensajeService {
	if mensajes == nil || users == nil {
		panic("nil dependency passed to NewMensajeService")
	}
	return &MensajeService{mensajes: mensajes, users: users}
}

// NuevoMensaje carries the contact-form fields.
type NuevoMensaje struct {
	UsuarioID *int64 `json:"usuario_id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Asunto    string `json:"asunto"`
	Mensaje   string `json:"mensaje"`
}

// Crear stores a contact message.  The optional account reference is
// validated best effort: an unknown id is rejected, but a user-service
// outage only drops the reference so the contact form keeps working.
func (s *MensajeService) Crear(ctx context.Context, in NuevoMensaje) (*model.Mensaje, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Nombre == "" || in.Email == "" || strings.TrimSpace(in.Mensaje) == "" {
		return nil, rechazo(ReasonDatosInvalidos, "nombre, email y mensaje son obligatorios")
	}

	usuarioID := in.UsuarioID
	if usuarioID != nil {
		u, err := s.users.GetUser(ctx, *usuarioID)
		switch {
		case err != nil:
			log.Printf("no se pudo validar el usuario %d del mensaje, se guarda sin referencia: %v", *usuarioID, err)
			usuarioID = nil
		case u == nil:
			return nil, rechazo(ReasonUsuarioNoExiste, "el usuario con ID %d no existe", *usuarioID)
		}
	}

	m := &model.Mensaje{
		UsuarioID: usuarioID,
		Nombre:    in.Nombre,
		Email:     in.Email,
		Asunto:    in.Asunto,
		Mensaje:   in.Mensaje,
		Fcreacion: time.Now().UTC(),
	}
	if err := s.mensajes.Create(ctx, m); err != nil {
		return nil, err
	}

	log.Printf("mensaje de contacto %d recibido de %s", m.ID, m.Email)
	return m, nil
}

// Obtener returns one message by id.
func (s *MensajeService) Obtener(ctx context.Context, id int64) (*model.Mensaje, error) {
	m, err := s.mensajes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "mensaje", id)
	}
	return m, nil
}

// Listar returns messages; soloPendientes narrows to unanswered ones.
func (s *MensajeService) Listar(ctx context.Context, soloPendientes bool) ([]model.Mensaje, error) {
	return s.mensajes.List(ctx, soloPendientes)
}

// Responder records the reply to a message.  Each message is answered
// at most once; a second reply fails with MENSAJE_YA_RESPONDIDO.
func (s *MensajeService) Responder(ctx context.Context, id int64, respuesta string) (*model.Mensaje, error) {
	if strings.TrimSpace(respuesta) == "" {
		return nil, rechazo(ReasonDatosInvalidos, "la respuesta no puede estar vacía")
	}
	ok, err := s.mensajes.Responder(ctx, id, respuesta)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Either the id is unknown or the message was already
		// answered; re-read to tell the two apart.
		if _, err := s.mensajes.GetByID(ctx, id); err != nil {
			return nil, notFoundOrErr(err, "mensaje", id)
		}
		return nil, rechazo(ReasonMensajeYaRespondido, "el mensaje %d ya fue respondido", id)
	}
	log.Printf("mensaje %d respondido", id)
	return s.Obtener(ctx, id)
}

// Eliminar removes a message.
func (s *MensajeService) Eliminar(ctx context.Context, id int64) error {
	if err := s.mensajes.Delete(ctx, id); err != nil {
		return notFoundOrErr(err, "mensaje", id)
	}
	log.Printf("mensaje %d eliminado", id)
	return nil
}
