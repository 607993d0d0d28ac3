package service

import (
	"context"

	"github.com/rentify/rental-services/internal/client"
)

// In-memory stand-ins for the remote lookup clients and the gate's
// repository slice.  Each fake returns whatever its fields hold.

type fakeUsers struct {
	user *client.Usuario
	err  error
}

func (f *fakeUsers) GetUser(context.Context, int64) (*client.Usuario, error) {
	return f.user, f.err
}

type fakeProperties struct {
	prop *client.Propiedad
	err  error
}

func (f *fakeProperties) GetProperty(context.Context, int64) (*client.Propiedad, error) {
	return f.prop, f.err
}

type fakeDocuments struct {
	approved bool
}

func (f *fakeDocuments) HasApprovedDocuments(context.Context, int64) bool {
	return f.approved
}

type fakeCounts struct {
	pendientes int64
	duplicada  bool
}

func (f *fakeCounts) CountPendientesByUsuario(context.Context, int64) (int64, error) {
	return f.pendientes, nil
}

func (f *fakeCounts) ExistsPendiente(context.Context, int64, int64) (bool, error) {
	return f.duplicada, nil
}
