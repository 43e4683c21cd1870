package handler

import (
	"net/http"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/middleware"
	"ayher/internal/repository"
	"ayher/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RemisionesHandler struct{ svc service.RemisionService }

func NewRemisionesHandler(svc service.RemisionService) *RemisionesHandler {
	return &RemisionesHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar remisión
// @Description  Despacha mercadería antes de facturar: descuenta stock ya, una salida por línea. Stock insuficiente en cualquier línea rechaza el documento completo.
// @Tags         remisiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarRemisionRequest true "Detalle de la remisión"
// @Success      201 {object} dto.RemisionResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/remisiones [post]
func (h *RemisionesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarRemisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req, middleware.Usuario(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MarcarFacturada godoc
// @Summary      Marcar remisión como facturada
// @Description  Cierra una remisión sin factura que la cubra. Idempotencia negativa: repetir la operación responde 409.
// @Tags         remisiones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.RemisionResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/remisiones/{id}/facturar [post]
func (h *RemisionesHandler) MarcarFacturada(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.MarcarFacturada(c.Request.Context(), id, middleware.Usuario(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RemisionesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RemisionesHandler) Listar(c *gin.Context) {
	var q dto.RemisionFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filter := repository.RemisionFilter{Page: q.Page, Limit: q.Limit}
	if q.ClienteID != "" {
		id, err := uuid.Parse(q.ClienteID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
			return
		}
		filter.ClienteID = &id
	}
	switch q.Facturada {
	case "true":
		v := true
		filter.Facturada = &v
	case "false":
		v := false
		filter.Facturada = &v
	}
	var err error
	if filter.Desde, filter.Hasta, err = service.ParseRangoFechas(q.Desde, q.Hasta); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
