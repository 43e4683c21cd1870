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

type DevolucionesHandler struct{ svc service.DevolucionService }

func NewDevolucionesHandler(svc service.DevolucionService) *DevolucionesHandler {
	return &DevolucionesHandler{svc: svc}
}

// RegistrarVenta godoc
// @Summary      Registrar devolución de cliente
// @Description  Reingresa mercadería devuelta por un cliente. Cada línea genera una entrada en el ledger.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarDevolucionVentaRequest true "Detalle de la devolución"
// @Success      201 {object} dto.DevolucionResponse
// @Router       /v1/devoluciones/venta [post]
func (h *DevolucionesHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarDevolucionVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req, middleware.Usuario(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarCompra godoc
// @Summary      Registrar devolución a proveedor
// @Description  Saca del inventario mercadería que regresa al proveedor. Requiere stock suficiente.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarDevolucionCompraRequest true "Detalle de la devolución"
// @Success      201 {object} dto.DevolucionResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/devoluciones/compra [post]
func (h *DevolucionesHandler) RegistrarCompra(c *gin.Context) {
	var req dto.RegistrarDevolucionCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCompra(c.Request.Context(), req, middleware.Usuario(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DevolucionesHandler) ObtenerVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DevolucionesHandler) ObtenerCompra(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerCompra(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DevolucionesHandler) ListarVenta(c *gin.Context) {
	filter, ok := devolucionFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarVenta(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DevolucionesHandler) ListarCompra(c *gin.Context) {
	filter, ok := devolucionFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarCompra(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func devolucionFilter(c *gin.Context) (repository.DevolucionFilter, bool) {
	var q dto.DevolucionFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return repository.DevolucionFilter{}, false
	}
	filter := repository.DevolucionFilter{Page: q.Page, Limit: q.Limit}
	var err error
	if filter.Desde, filter.Hasta, err = service.ParseRangoFechas(q.Desde, q.Hasta); err != nil {
		respondError(c, err)
		return repository.DevolucionFilter{}, false
	}
	return filter, true
}
