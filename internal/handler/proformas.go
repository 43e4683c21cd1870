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

type ProformasHandler struct{ svc service.ProformaService }

func NewProformasHandler(svc service.ProformaService) *ProformasHandler {
	return &ProformasHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar proforma
// @Description  Cotización numerada PRO-NNNNNN. No toca inventario ni reserva stock.
// @Tags         proformas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarProformaRequest true "Detalle de la proforma"
// @Success      201 {object} dto.ProformaResponse
// @Router       /v1/proformas [post]
func (h *ProformasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarProformaRequest
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

func (h *ProformasHandler) Obtener(c *gin.Context) {
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

func (h *ProformasHandler) Listar(c *gin.Context) {
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
