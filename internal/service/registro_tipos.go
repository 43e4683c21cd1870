package service

import (
	"context"
	"sync"

	"ayher/internal/apierror"
	"ayher/internal/model"
	"ayher/internal/repository"

	"github.com/rs/zerolog/log"
)

// TipoRegistry caches the movement-type table, loaded once at startup.
// The set is reference data seeded by cmd/seedtipos; workflows look types up
// by canonical name and a miss is a configuration defect, never a user error.
type TipoRegistry struct {
	mu    sync.RWMutex
	tipos map[string]model.TipoMovimiento
	repo  repository.TipoMovimientoRepository
}

func NewTipoRegistry(repo repository.TipoMovimientoRepository) *TipoRegistry {
	return &TipoRegistry{tipos: map[string]model.TipoMovimiento{}, repo: repo}
}

// Cargar loads the full table into the cache. Called from main before the
// server accepts traffic, and re-callable if the seed is re-run.
func (r *TipoRegistry) Cargar(ctx context.Context) error {
	tipos, err := r.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	m := make(map[string]model.TipoMovimiento, len(tipos))
	for _, t := range tipos {
		m[t.Nombre] = t
	}
	r.mu.Lock()
	r.tipos = m
	r.mu.Unlock()
	log.Info().Int("tipos", len(m)).Msg("registro de tipos de movimiento cargado")
	return nil
}

// Resolver returns the movement type for a canonical name.
func (r *TipoRegistry) Resolver(nombre string) (model.TipoMovimiento, error) {
	r.mu.RLock()
	t, ok := r.tipos[nombre]
	r.mu.RUnlock()
	if !ok {
		return model.TipoMovimiento{}, &apierror.ConfiguracionError{
			Detalle: "tipo de movimiento no registrado: " + nombre + " (ejecutar cmd/seedtipos)",
		}
	}
	return t, nil
}

// Listar returns the cached set for the reference-data endpoint.
func (r *TipoRegistry) Listar() []model.TipoMovimiento {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.TipoMovimiento, 0, len(r.tipos))
	for _, t := range r.tipos {
		out = append(out, t)
	}
	return out
}

// Precargar fills the cache directly, bypassing the repository. Test fixtures
// use it to avoid a database.
func (r *TipoRegistry) Precargar(tipos []model.TipoMovimiento) {
	m := make(map[string]model.TipoMovimiento, len(tipos))
	for _, t := range tipos {
		m[t.Nombre] = t
	}
	r.mu.Lock()
	r.tipos = m
	r.mu.Unlock()
}
