package infra

import (
	"fmt"

	"ayher/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for every model, and applies the DDL AutoMigrate cannot express.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey and can be mapped to a ConflictoError by the services.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by the integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Marca{},
		&model.Proveedor{},
		&model.Cliente{},
		&model.Articulo{},
		&model.TipoMovimiento{},
		&model.Movimiento{},
		&model.TasaCambio{},
		&model.Compra{},
		&model.CompraDetalle{},
		&model.Remision{},
		&model.RemisionDetalle{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.DevolucionVenta{},
		&model.DevolucionVentaDetalle{},
		&model.DevolucionCompra{},
		&model.DevolucionCompraDetalle{},
		&model.Cambio{},
		&model.CambioDetalle{},
		&model.Proforma{},
		&model.ProformaDetalle{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// pgcrypto provides gen_random_uuid() on Postgres < 13 images
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		// movement ledger is queried by artículo ordered by creation
		`CREATE INDEX IF NOT EXISTS idx_movimientos_articulo_created
		    ON movimientos (articulo_id, created_at DESC)`,
		// folio lookups read the newest document per series
		`CREATE INDEX IF NOT EXISTS idx_remisiones_created ON remisiones (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ventas_created ON ventas (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_proformas_created ON proformas (created_at DESC)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
