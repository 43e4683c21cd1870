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
	"gorm.io/gorm"
)

type ArticuloService interface {
	Crear(ctx context.Context, req dto.CrearArticuloRequest, usuario string) (*dto.ArticuloResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarArticuloRequest) (*dto.ArticuloResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ArticuloResponse, error)
	Listar(ctx context.Context, filter dto.ArticuloFilter) (*dto.ArticuloListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type articuloService struct {
	repo       repository.ArticuloRepository
	inventario InventarioService
	tasas      TasaService
}

func NewArticuloService(
	repo repository.ArticuloRepository,
	inventario InventarioService,
	tasas TasaService,
) ArticuloService {
	return &articuloService{repo: repo, inventario: inventario, tasas: tasas}
}

// Crear registers a catalog entry. A non-zero opening stock enters through an
// Ajuste de Inventario movement so the ledger accounts for every unit from
// day one.
func (s *articuloService) Crear(ctx context.Context, req dto.CrearArticuloRequest, usuario string) (*dto.ArticuloResponse, error) {
	tasa, err := s.tasas.Vigente(ctx)
	if err != nil {
		return nil, err
	}
	if req.CostoCordoba.IsNegative() || req.PrecioCordoba.IsNegative() {
		return nil, &apierror.ValidacionError{Detalle: "costo y precio no pueden ser negativos"}
	}
	marcaID, err := parseOptionalUUID(req.MarcaID, "marca_id")
	if err != nil {
		return nil, err
	}

	costo := req.CostoCordoba.Round(moneda.PrecisionUnitaria)
	precio := req.PrecioCordoba.Round(moneda.PrecisionUnitaria)

	articulo := &model.Articulo{
		NumeroParte:   req.NumeroParte,
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		MarcaID:       marcaID,
		CostoCordoba:  costo,
		CostoDolar:    moneda.ADolar(costo, tasa),
		PrecioCordoba: precio,
		PrecioDolar:   moneda.ADolar(precio, tasa),
		StockMinimo:   req.StockMinimo,
		Activo:        true,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var createErr error
		if tx == nil {
			createErr = s.repo.Create(ctx, articulo)
		} else {
			createErr = tx.Create(articulo).Error
		}
		if createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return &apierror.ConflictoError{Detalle: "ya existe un artículo con número de parte " + req.NumeroParte}
			}
			return createErr
		}

		if req.StockInicial > 0 {
			costoSnap := costo
			tasaSnap := tasa
			if _, err := s.inventario.AjustarUnoTx(tx, AjusteLinea{
				ArticuloID:    articulo.ID,
				Tipo:          model.TipoAjusteInventario,
				Cantidad:      req.StockInicial,
				PrecioCordoba: &costoSnap,
				TasaCambio:    &tasaSnap,
				Anotacion:     "Stock inicial",
			}, usuario); err != nil {
				return err
			}
			articulo.StockActual = req.StockInicial
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("articulo_id", articulo.ID.String()).
		Str("numero_parte", articulo.NumeroParte).
		Int("stock_inicial", req.StockInicial).
		Msg("artículo creado")

	return articuloToResponse(articulo), nil
}

// Actualizar edits catalog fields only: stock is never touched here, that is
// what the adjustment and document workflows are for.
func (s *articuloService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarArticuloRequest) (*dto.ArticuloResponse, error) {
	articulo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("articulo " + id.String())
		}
		return nil, err
	}

	if req.Nombre != nil {
		articulo.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		articulo.Descripcion = req.Descripcion
	}
	if req.MarcaID != nil {
		marcaID, err := parseOptionalUUID(req.MarcaID, "marca_id")
		if err != nil {
			return nil, err
		}
		articulo.MarcaID = marcaID
	}
	if req.CostoCordoba != nil || req.PrecioCordoba != nil {
		tasa, err := s.tasas.Vigente(ctx)
		if err != nil {
			return nil, err
		}
		if req.CostoCordoba != nil {
			if req.CostoCordoba.IsNegative() {
				return nil, &apierror.ValidacionError{Detalle: "el costo no puede ser negativo"}
			}
			articulo.CostoCordoba = req.CostoCordoba.Round(moneda.PrecisionUnitaria)
			articulo.CostoDolar = moneda.ADolar(articulo.CostoCordoba, tasa)
		}
		if req.PrecioCordoba != nil {
			if req.PrecioCordoba.IsNegative() {
				return nil, &apierror.ValidacionError{Detalle: "el precio no puede ser negativo"}
			}
			articulo.PrecioCordoba = req.PrecioCordoba.Round(moneda.PrecisionUnitaria)
			articulo.PrecioDolar = moneda.ADolar(articulo.PrecioCordoba, tasa)
		}
	}
	if req.StockMinimo != nil {
		articulo.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, articulo); err != nil {
		return nil, err
	}
	return articuloToResponse(articulo), nil
}

func (s *articuloService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ArticuloResponse, error) {
	articulo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("articulo " + id.String())
		}
		return nil, err
	}
	return articuloToResponse(articulo), nil
}

func (s *articuloService) Listar(ctx context.Context, filter dto.ArticuloFilter) (*dto.ArticuloListResponse, error) {
	articulos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticuloResponse, 0, len(articulos))
	for i := range articulos {
		items = append(items, *articuloToResponse(&articulos[i]))
	}
	return &dto.ArticuloListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *articuloService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("articulo " + id.String())
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *articuloService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("articulo " + id.String())
		}
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

func articuloToResponse(a *model.Articulo) *dto.ArticuloResponse {
	resp := &dto.ArticuloResponse{
		ID:            a.ID.String(),
		NumeroParte:   a.NumeroParte,
		Nombre:        a.Nombre,
		Descripcion:   a.Descripcion,
		CostoCordoba:  a.CostoCordoba,
		CostoDolar:    a.CostoDolar,
		PrecioCordoba: a.PrecioCordoba,
		PrecioDolar:   a.PrecioDolar,
		StockActual:   a.StockActual,
		StockMinimo:   a.StockMinimo,
		Activo:        a.Activo,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
	if a.MarcaID != nil {
		id := a.MarcaID.String()
		resp.MarcaID = &id
	}
	if a.Marca != nil {
		resp.Marca = &a.Marca.Nombre
	}
	return resp
}
