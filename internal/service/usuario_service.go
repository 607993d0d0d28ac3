package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/rentify/rental-services/internal/model"
	"github.com/rentify/rental-services/internal/repository"
	"github.com/rentify/rental-services/internal/utils"
)

const edadMinima = 18

// UsuarioService manages platform accounts.  Passwords are stored as
// bcrypt hashes; login and token issuance live outside this service.
type UsuarioService struct {
	usuarios   *repository.UsuarioRepo
	bcryptCost int
}

func NewUsuarioService(usuarios *repository.UsuarioRepo, bcryptCost int) *UsuarioService {
	if usuarios == nil {
		panic("nil dependency passed to NewUsuarioService")
	}
	return &UsuarioService{usuarios: usuarios, bcryptCost: bcryptCost}
}

// RegistroUsuario carries the fields accepted when creating an account.
type RegistroUsuario struct {
	Pnombre     string    `json:"pnombre"`
	Snombre     string    `json:"snombre"`
	Papellido   string    `json:"papellido"`
	Fnacimiento time.Time `json:"fnacimiento"`
	Email       string    `json:"email"`
	Rut         string    `json:"rut"`
	Ntelefono   string    `json:"ntelefono"`
	Clave       string    `json:"clave"`
	Rol         model.Rol `json:"rol"`
}

// Registrar creates a new account.  Applicants must be at least 18
// years old and present an email and rut not already registered.  An
// omitted rol defaults to ARRIENDATARIO; accounts with a @duoc.cl email
// are flagged as VIP.
func (s *UsuarioService) Registrar(ctx context.Context, in RegistroUsuario) (*model.Usuario, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Rut = strings.TrimSpace(in.Rut)
	if in.Pnombre == "" || in.Papellido == "" || in.Email == "" || in.Rut == "" || in.Clave == "" {
		return nil, rechazo(ReasonDatosInvalidos, "pnombre, papellido, email, rut y clave son obligatorios")
	}
	if edad(in.Fnacimiento) < edadMinima {
		return nil, rechazo(ReasonEdadMinima, "el usuario debe tener al menos %d años", edadMinima)
	}
	rol := in.Rol
	if rol == "" {
		rol = model.RolArriendatario
	}
	if !rol.Valido() {
		return nil, rechazo(ReasonRolInvalido, "rol desconocido: %s", rol)
	}

	if dup, err := s.usuarios.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if dup {
		return nil, rechazo(ReasonEmailDuplicado, "el email %s ya está registrado", in.Email)
	}
	if dup, err := s.usuarios.ExistsByRut(ctx, in.Rut); err != nil {
		return nil, err
	} else if dup {
		return nil, rechazo(ReasonRutDuplicado, "el rut %s ya está registrado", in.Rut)
	}

	hash, err := utils.HashPassword(in.Clave, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &model.Usuario{
		Pnombre:        in.Pnombre,
		Snombre:        in.Snombre,
		Papellido:      in.Papellido,
		Fnacimiento:    in.Fnacimiento,
		Email:          in.Email,
		Rut:            in.Rut,
		Ntelefono:      in.Ntelefono,
		Clave:          hash,
		CodigoRef:      nuevoCodigoRef(),
		DuocVip:        strings.HasSuffix(in.Email, "@duoc.cl"),
		Rol:            rol,
		Estado:         model.UsuarioActivo,
		Fcreacion:      now,
		Factualizacion: now,
	}
	if err := s.usuarios.Create(ctx, u); err != nil {
		// The unique indexes are authoritative; the pre-checks above
		// only give the nicer of two duplicate messages.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rechazo(ReasonEmailDuplicado, "el email o rut ya está registrado")
		}
		return nil, err
	}

	log.Printf("usuario %d registrado (%s)", u.ID, u.Email)
	return u, nil
}

// Obtener returns one account by id.
func (s *UsuarioService) Obtener(ctx context.Context, id int64) (*model.Usuario, error) {
	u, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "usuario", id)
	}
	return u, nil
}

// Listar returns every account.
func (s *UsuarioService) Listar(ctx context.Context) ([]model.Usuario, error) {
	return s.usuarios.List(ctx)
}

// ActualizacionUsuario carries the mutable account fields.  Nil fields
// are left untouched.
type ActualizacionUsuario struct {
	Pnombre   *string `json:"pnombre"`
	Snombre   *string `json:"snombre"`
	Papellido *string `json:"papellido"`
	Ntelefono *string `json:"ntelefono"`
	Clave     *string `json:"clave"`
}

// Actualizar applies a partial update to an account.
func (s *UsuarioService) Actualizar(ctx context.Context, id int64, in ActualizacionUsuario) (*model.Usuario, error) {
	u, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "usuario", id)
	}
	if in.Pnombre != nil {
		u.Pnombre = *in.Pnombre
	}
	if in.Snombre != nil {
		u.Snombre = *in.Snombre
	}
	if in.Papellido != nil {
		u.Papellido = *in.Papellido
	}
	if in.Ntelefono != nil {
		u.Ntelefono = *in.Ntelefono
	}
	if in.Clave != nil {
		hash, err := utils.HashPassword(*in.Clave, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		u.Clave = hash
	}
	u.Factualizacion = time.Now().UTC()
	if err := s.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Desactivar marks an account INACTIVO without deleting its row;
// solicitudes and documentos keep pointing at it.
func (s *UsuarioService) Desactivar(ctx context.Context, id int64) (*model.Usuario, error) {
	u, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrErr(err, "usuario", id)
	}
	u.Estado = model.UsuarioInactivo
	u.Factualizacion = time.Now().UTC()
	if err := s.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("usuario %d desactivado", id)
	return u, nil
}

// edad computes completed years since fnacimiento.
func edad(fnacimiento time.Time) int {
	now := time.Now().UTC()
	years := now.Year() - fnacimiento.Year()
	if now.YearDay() < fnacimiento.YearDay() {
		years--
	}
	return years
}

// nuevoCodigoRef builds a short random referral code.
func nuevoCodigoRef() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return "REF-" + strings.ToUpper(hex.EncodeToString(b[:]))
}
