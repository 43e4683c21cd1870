package handler

import (
	"net/http"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogosHandler agrupa los CRUD de marcas, proveedores y clientes.
type CatalogosHandler struct {
	marcas      service.MarcaService
	proveedores service.ProveedorService
	clientes    service.ClienteService
}

func NewCatalogosHandler(marcas service.MarcaService, proveedores service.ProveedorService, clientes service.ClienteService) *CatalogosHandler {
	return &CatalogosHandler{marcas: marcas, proveedores: proveedores, clientes: clientes}
}

func incluirInactivos(c *gin.Context) bool {
	return c.Query("incluir_inactivos") == "true"
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Marcas ────────────────────────────────────────────────────────────

func (h *CatalogosHandler) CrearMarca(c *gin.Context) {
	var req dto.MarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.marcas.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) ListarMarcas(c *gin.Context) {
	resp, err := h.marcas.Listar(c.Request.Context(), incluirInactivos(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CatalogosHandler) ActualizarMarca(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.MarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.marcas.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) DesactivarMarca(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.marcas.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Proveedores ───────────────────────────────────────────────────────

func (h *CatalogosHandler) CrearProveedor(c *gin.Context) {
	var req dto.ProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.proveedores.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) ListarProveedores(c *gin.Context) {
	resp, err := h.proveedores.Listar(c.Request.Context(), incluirInactivos(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CatalogosHandler) ActualizarProveedor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.proveedores.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) DesactivarProveedor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.proveedores.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Clientes ──────────────────────────────────────────────────────────

func (h *CatalogosHandler) CrearCliente(c *gin.Context) {
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.clientes.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) ListarClientes(c *gin.Context) {
	resp, err := h.clientes.Listar(c.Request.Context(), c.Query("nombre"), incluirInactivos(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CatalogosHandler) ActualizarCliente(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.clientes.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) DesactivarCliente(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.clientes.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
