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

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler { return &ComprasHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar compra
// @Description  Crea una compra ACID: encabezado, detalle y un movimiento de entrada por línea.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarCompraRequest true "Detalle de la compra"
// @Success      201 {object} dto.CompraResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
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

func (h *ComprasHandler) Obtener(c *gin.Context) {
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

func (h *ComprasHandler) Listar(c *gin.Context) {
	var q dto.DevolucionFilter // same shape: desde/hasta/page/limit
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filter := repository.CompraFilter{Page: q.Page, Limit: q.Limit}
	if proveedorID := c.Query("proveedor_id"); proveedorID != "" {
		id, err := uuid.Parse(proveedorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("proveedor_id inválido"))
			return
		}
		filter.ProveedorID = &id
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
