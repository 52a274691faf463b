package dto

// LifecycleRequest body común de las operaciones de aprobación/rechazo.
// El usuario que ejecuta la operación sale del token; Observaciones queda
// en la fila de historial.
type LifecycleRequest struct {
	Codigo        int    `json:"codigo" validate:"required"`
	Observaciones string `json:"observaciones,omitempty"`
}

// LifecycleResponse resultado de una transición de estado.
type LifecycleResponse struct {
	Codigo         int    `json:"codigo"`
	EstadoAnterior int    `json:"estado_anterior"`
	EstadoNuevo    int    `json:"estado_nuevo"`
	Mensaje        string `json:"mensaje,omitempty"`
}
