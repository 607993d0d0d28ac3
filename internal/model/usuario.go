package model

import "time"

// Usuario is a platform account.  The clave column stores a bcrypt
// hash and is never serialized.
type Usuario struct {
	ID             int64         `json:"id"`             // usuarios.id
	Pnombre        string        `json:"pnombre"`        // usuarios.pnombre
	Snombre        string        `json:"snombre"`        // usuarios.snombre (may be empty)
	Papellido      string        `json:"papellido"`      // usuarios.papellido
	Fnacimiento    time.Time     `json:"fnacimiento"`    // usuarios.fnacimiento
	Email          string        `json:"email"`          // usuarios.email (unique)
	Rut            string        `json:"rut"`            // usuarios.rut (unique)
	Ntelefono      string        `json:"ntelefono"`      // usuarios.ntelefono
	Clave          string        `json:"-"`              // usuarios.clave (bcrypt hash)
	Puntos         int           `json:"puntos"`         // usuarios.puntos
	DuocVip        bool          `json:"duoc_vip"`       // usuarios.duoc_vip
	CodigoRef      string        `json:"codigo_ref"`     // usuarios.codigo_ref
	Rol            Rol           `json:"rol"`            // usuarios.rol
	Estado         EstadoUsuario `json:"estado"`         // usuarios.estado
	Fcreacion      time.Time     `json:"fcreacion"`      // usuarios.fcreacion
	Factualizacion time.Time     `json:"factualizacion"` // usuarios.factualizacion
}
