package service

import (
	"context"
	"errors"
	"time"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/moneda"
	"ayher/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProformaService issues quotes. A proforma is numbered like the other
// documents but touches no stock and books no movements; converting it into a
// sale is a separate RegistrarVenta request.
type ProformaService interface {
	Registrar(ctx context.Context, req dto.RegistrarProformaRequest, usuario string) (*dto.ProformaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProformaResponse, error)
	Listar(ctx context.Context, desde, hasta *time.Time, page, limit int) (*dto.ProformaListResponse, error)
}

type proformaService struct {
	repo  repository.ProformaRepository
	tasas TasaService
}

func NewProformaService(repo repository.ProformaRepository, tasas TasaService) ProformaService {
	return &proformaService{repo: repo, tasas: tasas}
}

func (s *proformaService) Registrar(ctx context.Context, req dto.RegistrarProformaRequest, usuario string) (*dto.ProformaResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}
	clienteID, err := parseOptionalUUID(req.ClienteID, "cliente_id")
	if err != nil {
		return nil, err
	}

	proforma := &model.Proforma{
		ClienteID:  clienteID,
		TasaCambio: tasa,
		Usuario:    usuario,
	}
	if req.VigenciaDias > 0 {
		vigencia := time.Now().AddDate(0, 0, req.VigenciaDias)
		proforma.Vigencia = &vigencia
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.siguienteNumeroTx(tx)
		if err != nil {
			return err
		}
		proforma.Numero = numero

		totalCordoba := decimal.Zero
		for _, l := range req.Lineas {
			articuloID, err := uuid.Parse(l.ArticuloID)
			if err != nil {
				return &apierror.ValidacionError{Detalle: "articulo_id inválido: " + l.ArticuloID}
			}
			if !l.PrecioCordoba.IsPositive() {
				return &apierror.ValidacionError{Detalle: "el precio unitario debe ser mayor que cero"}
			}
			precioCordoba := l.PrecioCordoba.Round(moneda.PrecisionUnitaria)
			proforma.Detalles = append(proforma.Detalles, model.ProformaDetalle{
				ArticuloID:    articuloID,
				Cantidad:      l.Cantidad,
				PrecioCordoba: precioCordoba,
				PrecioDolar:   moneda.ADolar(precioCordoba, tasa),
			})
			totalCordoba = totalCordoba.Add(precioCordoba.Mul(decimal.NewFromInt(int64(l.Cantidad))))
		}
		proforma.TotalCordoba = moneda.TotalCordoba(totalCordoba)
		proforma.TotalDolar = moneda.TotalDolar(totalCordoba, tasa)

		if err := s.repo.CreateTx(tx, proforma); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &apierror.ConflictoError{Detalle: "número de proforma ya emitido: " + proforma.Numero}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("proforma_id", proforma.ID.String()).
		Str("numero", proforma.Numero).
		Str("usuario", usuario).
		Msg("proforma registrada")

	return proformaToResponse(proforma), nil
}

func (s *proformaService) siguienteNumeroTx(tx *gorm.DB) (string, error) {
	ultima, err := s.repo.UltimaTx(tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return siguienteFolio("", folioPrefijoProforma), nil
	}
	if err != nil {
		return "", err
	}
	return siguienteFolio(ultima.Numero, folioPrefijoProforma), nil
}

func (s *proformaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProformaResponse, error) {
	proforma, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("proforma " + id.String())
		}
		return nil, err
	}
	return proformaToResponse(proforma), nil
}

func (s *proformaService) Listar(ctx context.Context, desde, hasta *time.Time, page, limit int) (*dto.ProformaListResponse, error) {
	proformas, total, err := s.repo.List(ctx, desde, hasta, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProformaResponse, 0, len(proformas))
	for i := range proformas {
		items = append(items, *proformaToResponse(&proformas[i]))
	}
	return &dto.ProformaListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func proformaToResponse(p *model.Proforma) *dto.ProformaResponse {
	resp := &dto.ProformaResponse{
		ID:           p.ID.String(),
		Numero:       p.Numero,
		TotalCordoba: p.TotalCordoba,
		TotalDolar:   p.TotalDolar,
		TasaCambio:   p.TasaCambio,
		Usuario:      p.Usuario,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Cliente != nil {
		resp.Cliente = &p.Cliente.Nombre
	}
	if p.Vigencia != nil {
		v := p.Vigencia.Format("2006-01-02")
		resp.Vigencia = &v
	}
	for i := range p.Detalles {
		d := &p.Detalles[i]
		linea := dto.ProformaLineaResponse{
			ArticuloID:    d.ArticuloID.String(),
			Cantidad:      d.Cantidad,
			PrecioCordoba: d.PrecioCordoba,
			PrecioDolar:   d.PrecioDolar,
		}
		if d.Articulo != nil {
			linea.NumeroParte = d.Articulo.NumeroParte
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}
