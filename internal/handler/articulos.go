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

type ArticulosHandler struct {
	svc        service.ArticuloService
	inventario service.InventarioService
}

func NewArticulosHandler(svc service.ArticuloService, inventario service.InventarioService) *ArticulosHandler {
	return &ArticulosHandler{svc: svc, inventario: inventario}
}

// Crear godoc
// @Summary      Crear artículo
// @Description  Registra un artículo del catálogo. El stock inicial entra como movimiento de ajuste.
// @Tags         articulos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearArticuloRequest true "Artículo"
// @Success      201  {object} dto.ArticuloResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/articulos [post]
func (h *ArticulosHandler) Crear(c *gin.Context) {
	var req dto.CrearArticuloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, middleware.Usuario(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar artículos
// @Produce      json
// @Security     BearerAuth
// @Param        numero_parte query string false "Número de parte exacto"
// @Param        nombre       query string false "Búsqueda parcial por nombre"
// @Param        bajo_minimo  query bool   false "Sólo artículos en o bajo el mínimo"
// @Success      200 {object} dto.ArticuloListResponse
// @Router       /v1/articulos [get]
func (h *ArticulosHandler) Listar(c *gin.Context) {
	var filter dto.ArticuloFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticulosHandler) Obtener(c *gin.Context) {
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

func (h *ArticulosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarArticuloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticulosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ArticulosHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Auditar godoc
// @Summary      Auditar stock de un artículo
// @Description  Compara el stock materializado contra la suma firmada del ledger de movimientos.
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.AuditoriaStockResponse
// @Router       /v1/articulos/{id}/auditoria [get]
func (h *ArticulosHandler) Auditar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.inventario.AuditarStock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
