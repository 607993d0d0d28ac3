package model

// Rol identifies what a user is allowed to do on the platform.  The
// values mirror the rol table of the user service and travel between
// services as plain strings.
type Rol string

const (
	RolAdmin         Rol = "ADMIN"
	RolPropietario   Rol = "PROPIETARIO"
	RolArriendatario Rol = "ARRIENDATARIO"
)

// Valido reports whether r is one of the known roles.
func (r Rol) Valido() bool {
	return r == RolAdmin || r == RolPropietario || r == RolArriendatario
}

// PuedeCrearSolicitud reports whether the role may open rental
// applications.  Only tenants and admins apply for properties.
func (r Rol) PuedeCrearSolicitud() bool {
	return r == RolArriendatario || r == RolAdmin
}

// PuedeResolverSolicitud reports whether the role may accept or reject
// applications.  Only owners and admins decide on them.
func (r Rol) PuedeResolverSolicitud() bool {
	return r == RolPropietario || r == RolAdmin
}

// EstadoUsuario is the lifecycle state of a user account.
type EstadoUsuario string

const (
	UsuarioActivo     EstadoUsuario = "ACTIVO"
	UsuarioInactivo   EstadoUsuario = "INACTIVO"
	UsuarioSuspendido EstadoUsuario = "SUSPENDIDO"
)

// Valido reports whether e is one of the known account states.
func (e EstadoUsuario) Valido() bool {
	return e == UsuarioActivo || e == UsuarioInactivo || e == UsuarioSuspendido
}
