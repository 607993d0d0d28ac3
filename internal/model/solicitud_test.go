package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoSolicitud(t *testing.T) {
	assert.True(t, SolicitudPendiente.Valido())
	assert.False(t, EstadoSolicitud("EN_ESPERA").Valido())

	assert.False(t, SolicitudPendiente.Terminal())
	assert.True(t, SolicitudAceptada.Terminal())
	assert.True(t, SolicitudRechazada.Terminal())
}

func TestRolesYPermisos(t *testing.T) {
	assert.True(t, RolArriendatario.PuedeCrearSolicitud())
	assert.True(t, RolAdmin.PuedeCrearSolicitud())
	assert.False(t, RolPropietario.PuedeCrearSolicitud())

	assert.True(t, RolPropietario.PuedeResolverSolicitud())
	assert.True(t, RolAdmin.PuedeResolverSolicitud())
	assert.False(t, RolArriendatario.PuedeResolverSolicitud())
}
