package handler

import (
	"net/http"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/middleware"
	"ayher/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CambiosHandler struct{ svc service.CambioService }

func NewCambiosHandler(svc service.CambioService) *CambiosHandler { return &CambiosHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar cambio de mercadería
// @Description  Intercambia un artículo entregado por otro: una salida y una entrada por línea, en la misma transacción.
// @Tags         cambios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarCambioRequest true "Detalle del cambio"
// @Success      201 {object} dto.CambioResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cambios [post]
func (h *CambiosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCambioRequest
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

func (h *CambiosHandler) Obtener(c *gin.Context) {
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

func (h *CambiosHandler) Listar(c *gin.Context) {
	var q dto.DevolucionFilter // same shape: desde/hasta/page/limit
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	desde, hasta, err := service.ParseRangoFechas(q.Desde, q.Hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), desde, hasta, q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
