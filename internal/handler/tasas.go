package handler

import (
	"net/http"

	"ayher/internal/dto"
	"ayher/internal/middleware"
	"ayher/internal/service"

	"github.com/gin-gonic/gin"
)

type TasasHandler struct{ svc service.TasaService }

func NewTasasHandler(svc service.TasaService) *TasasHandler { return &TasasHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar tasa de cambio
// @Description  Fija la tasa córdoba/dólar vigente a partir de una fecha. Una tasa por fecha.
// @Tags         tasas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarTasaRequest true "Tasa"
// @Success      201 {object} dto.TasaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/tasas [post]
func (h *TasasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarTasaRequest
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

// Vigente returns the rate documents would be issued with right now.
func (h *TasasHandler) Vigente(c *gin.Context) {
	tasa, err := h.svc.Vigente(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasa": tasa})
}

func (h *TasasHandler) Listar(c *gin.Context) {
	desde, hasta, err := service.ParseRangoFechas(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
