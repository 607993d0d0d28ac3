package model

import "time"

// EstadoDocumento is the review state of an uploaded document.
type EstadoDocumento string

const (
	DocumentoPendiente  EstadoDocumento = "PENDIENTE"
	DocumentoAceptado   EstadoDocumento = "ACEPTADO"
	DocumentoRechazado  EstadoDocumento = "RECHAZADO"
	DocumentoEnRevision EstadoDocumento = "EN_REVISION"
)

// Valido reports whether e is one of the known review states.
func (e EstadoDocumento) Valido() bool {
	switch e {
	case DocumentoPendiente, DocumentoAceptado, DocumentoRechazado, DocumentoEnRevision:
		return true
	}
	return false
}

// TipoDocumento enumerates the document kinds accepted for tenant and
// owner verification.
type TipoDocumento string

const (
	DocDNI                     TipoDocumento = "DNI"
	DocPasaporte               TipoDocumento = "PASAPORTE"
	DocLiquidacionSueldo       TipoDocumento = "LIQUIDACION_SUELDO"
	DocCertificadoAntecedentes TipoDocumento = "CERTIFICADO_ANTECEDENTES"
	DocCertificadoAFP          TipoDocumento = "CERTIFICADO_AFP"
	DocContratoTrabajo         TipoDocumento = "CONTRATO_TRABAJO"
)

// Valido reports whether t is one of the accepted document kinds.
func (t TipoDocumento) Valido() bool {
	switch t {
	case DocDNI, DocPasaporte, DocLiquidacionSueldo, DocCertificadoAntecedentes, DocCertificadoAFP, DocContratoTrabajo:
		return true
	}
	return false
}

// Documento is a verification document uploaded by a user.  The user
// itself lives in the user service; only its id is stored here.
type Documento struct {
	ID            int64           `json:"id"`                      // documentos.id
	Nombre        string          `json:"nombre"`                  // documentos.nombre
	UsuarioID     int64           `json:"usuario_id"`              // documentos.usuario_id
	Tipo          TipoDocumento   `json:"tipo"`                    // documentos.tipo
	Estado        EstadoDocumento `json:"estado"`                  // documentos.estado
	Observaciones string          `json:"observaciones,omitempty"` // documentos.observaciones (reviewer notes)
	FechaSubido   time.Time       `json:"f_subido"`                // documentos.f_subido
}
