// Package service implements the use-case layer of each microservice.
// Failures are reported as typed values rather than raised across
// boundaries: a *BusinessError carries a machine-readable Reason next
// to the human message, a *NotFoundError names the missing resource,
// and transport failures surface as *client.CommunicationError from
// the lookup clients.  Handlers map the three onto 400, 404 and 503.
package service

import "fmt"

// Reason is a stable machine-readable rejection code.
type Reason string

const (
	// Validation gate rejections, in the order the gate checks them.
	ReasonUsuarioNoExiste       Reason = "USUARIO_NO_EXISTE"
	ReasonPropiedadNoExiste     Reason = "PROPIEDAD_NO_EXISTE"
	ReasonPropiedadNoDisponible Reason = "PROPIEDAD_NO_DISPONIBLE"
	ReasonRolNoPermitido        Reason = "ROL_NO_PERMITIDO"
	ReasonDocumentosNoAprobados Reason = "DOCUMENTOS_NO_APROBADOS"
	ReasonMaxSolicitudesActivas Reason = "MAX_SOLICITUDES_ACTIVAS"
	ReasonSolicitudDuplicada    Reason = "SOLICITUD_DUPLICADA"

	// State machine and lease manager rejections.
	ReasonEstadoInvalido      Reason = "ESTADO_INVALIDO"
	ReasonSolicitudNoAceptada Reason = "SOLICITUD_NO_ACEPTADA"
	ReasonRegistroYaExiste    Reason = "REGISTRO_YA_EXISTE"
	ReasonRegistroYaInactivo  Reason = "REGISTRO_YA_INACTIVO"
	ReasonFechasInvalidas     Reason = "FECHAS_INVALIDAS"
	ReasonMontoInvalido       Reason = "MONTO_INVALIDO"

	// User account rejections.
	ReasonEmailDuplicado Reason = "EMAIL_DUPLICADO"
	ReasonRutDuplicado   Reason = "RUT_DUPLICADO"
	ReasonEdadMinima     Reason = "EDAD_MINIMA"
	ReasonRolInvalido    Reason = "ROL_INVALIDO"

	// Property rejections.
	ReasonCodigoDuplicado Reason = "CODIGO_DUPLICADO"
	ReasonPrecioInvalido  Reason = "PRECIO_INVALIDO"
	ReasonMaxFotos        Reason = "MAX_FOTOS"

	// Document rejections.
	ReasonTipoInvalido            Reason = "TIPO_INVALIDO"
	ReasonMaxDocumentos           Reason = "MAX_DOCUMENTOS"
	ReasonObservacionesRequeridas Reason = "OBSERVACIONES_REQUERIDAS"

	// Review and contact rejections.
	ReasonResenaDuplicada     Reason = "RESENA_DUPLICADA"
	ReasonPuntuacionInvalida  Reason = "PUNTUACION_INVALIDA"
	ReasonMensajeYaRespondido Reason = "MENSAJE_YA_RESPONDIDO"

	// Catch-all for malformed input the handler could not reject earlier.
	ReasonDatosInvalidos Reason = "DATOS_INVALIDOS"
)

// BusinessError is a rule violation the caller can correct.  It maps to
// an HTTP 400 with the reason code in the body and is never retried.
type BusinessError struct {
	Reason  Reason
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// rechazo builds a *BusinessError in one line.
func rechazo(reason Reason, format string, args ...any) *BusinessError {
	return &BusinessError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a locally owned resource does not exist.
// It maps to an HTTP 404.
type NotFoundError struct {
	Recurso string // resource name, e.g. "solicitud"
	ID      int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrada con ID: %d", e.Recurso, e.ID)
}
