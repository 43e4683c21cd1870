package service

import (
	"context"
	"errors"
	"time"

	"ayher/internal/apierror"
	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TasaService records and resolves the córdoba-per-dólar exchange rate.
// Documents snapshot the rate in force at persist time; a missing rate is a
// configuration defect because no document can be valued without one.
type TasaService interface {
	Registrar(ctx context.Context, req dto.RegistrarTasaRequest, usuario string) (*dto.TasaResponse, error)
	Vigente(ctx context.Context) (decimal.Decimal, error)
	Listar(ctx context.Context, desde, hasta *time.Time) (*dto.TasaListResponse, error)
}

type tasaService struct {
	repo repository.TasaCambioRepository
}

func NewTasaService(repo repository.TasaCambioRepository) TasaService {
	return &tasaService{repo: repo}
}

func (s *tasaService) Registrar(ctx context.Context, req dto.RegistrarTasaRequest, usuario string) (*dto.TasaResponse, error) {
	if !req.Valor.IsPositive() {
		return nil, &apierror.ValidacionError{Detalle: "la tasa de cambio debe ser mayor que cero"}
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, &apierror.ValidacionError{Detalle: "fecha inválida, formato esperado YYYY-MM-DD"}
	}

	t := &model.TasaCambio{Fecha: fecha, Valor: req.Valor, Usuario: usuario}
	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apierror.ConflictoError{Detalle: "ya existe una tasa registrada para " + req.Fecha}
		}
		return nil, err
	}
	return tasaToResponse(t), nil
}

// Vigente returns the latest recorded rate on or before today.
func (s *tasaService) Vigente(ctx context.Context) (decimal.Decimal, error) {
	t, err := s.repo.Vigente(ctx, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, &apierror.ConfiguracionError{
				Detalle: "no hay tasa de cambio registrada; registrar una antes de emitir documentos",
			}
		}
		return decimal.Zero, err
	}
	return t.Valor, nil
}

func (s *tasaService) Listar(ctx context.Context, desde, hasta *time.Time) (*dto.TasaListResponse, error) {
	tasas, err := s.repo.List(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TasaResponse, 0, len(tasas))
	for i := range tasas {
		items = append(items, *tasaToResponse(&tasas[i]))
	}
	return &dto.TasaListResponse{Data: items}, nil
}

func tasaToResponse(t *model.TasaCambio) *dto.TasaResponse {
	return &dto.TasaResponse{
		ID:      t.ID.String(),
		Fecha:   t.Fecha.Format("2006-01-02"),
		Valor:   t.Valor,
		Usuario: t.Usuario,
	}
}
