package handler

import (
	"net/http"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/middleware"
	"ayher/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct {
	svc      service.InventarioService
	registro *service.TipoRegistry
}

func NewInventarioHandler(svc service.InventarioService, registro *service.TipoRegistry) *InventarioHandler {
	return &InventarioHandler{svc: svc, registro: registro}
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de inventario
// @Description  Ledger de movimientos, filtrable por artículo y tipo, orden descendente por fecha.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        articulo_id query string false "UUID del artículo"
// @Param        tipo        query string false "Nombre canónico del tipo"
// @Success      200 {object} dto.MovimientoListResponse
// @Router       /v1/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjusteManual godoc
// @Summary      Ajuste manual de stock
// @Description  Corrección puntual con motivo obligatorio. Cantidad positiva suma, negativa resta.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AjusteInventarioRequest true "Ajuste"
// @Success      201 {object} dto.MovimientoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/movimientos/ajuste [post]
func (h *InventarioHandler) AjusteManual(c *gin.Context) {
	var req dto.AjusteInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjusteManual(c.Request.Context(), req, middleware.Usuario(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarTipos returns the cached movement-type reference data.
func (h *InventarioHandler) ListarTipos(c *gin.Context) {
	tipos := h.registro.Listar()
	out := make([]dto.TipoMovimientoResponse, 0, len(tipos))
	for _, t := range tipos {
		out = append(out, dto.TipoMovimientoResponse{
			ID:          t.ID.String(),
			Nombre:      t.Nombre,
			AfectaStock: t.AfectaStock,
			EsEntrada:   t.EsEntrada,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
