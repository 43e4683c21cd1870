//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ayher/internal/config"
	"ayher/internal/infra"
	"ayher/internal/model"
	"ayher/internal/repository"
	"ayher/internal/router"
	"ayher/internal/service"
	"ayher/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("ayher_test"),
		tcPostgres.WithUsername("ayher"),
		tcPostgres.WithPassword("ayher"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		Empresa:            "Repuestos AYHER",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Movement types are reference data: seed and load the registry the way
	// cmd/seedtipos + main do.
	tipoRepo := repository.NewTipoMovimientoRepository(db)
	for _, tipo := range model.TiposSemilla() {
		tipo := tipo
		require.NoError(t, tipoRepo.Upsert(ctx, &tipo))
	}
	registro := service.NewTipoRegistry(tipoRepo)
	require.NoError(t, registro.Cargar(ctx))

	hash, err := bcrypt.GenerateFromPassword([]byte("ayher2026"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (username, nombre, password_hash, rol)
		VALUES ('admin.e2e', 'Admin E2E', ?, 'administrador')
		ON CONFLICT (username) DO NOTHING`, string(hash)).Error)

	dispatcher := worker.NewDispatcher(rdb)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r := router.New(cfg, db, rdb, registro, dispatcher, smtpCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin.e2e", "password": "ayher2026"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.Token)

	env := &testEnv{server: srv, token: login.Token}

	// Every document snapshots the exchange rate in force.
	tasaResp := do(t, srv, "POST", "/v1/tasas",
		jsonBody(t, map[string]any{"fecha": time.Now().Format("2006-01-02"), "valor": "36.62"}),
		env.token)
	require.Equal(t, http.StatusCreated, tasaResp.StatusCode)

	return env
}

func (env *testEnv) crearArticulo(t *testing.T, numeroParte string, stockInicial int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/articulos",
		jsonBody(t, map[string]any{
			"numero_parte":   numeroParte,
			"nombre":         "Repuesto " + numeroParte,
			"costo_cordoba":  "100",
			"precio_cordoba": "150",
			"stock_inicial":  stockInicial,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var art struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &art)
	return art.ID
}

func (env *testEnv) stockActual(t *testing.T, articuloID string) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/articulos/"+articuloID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var art struct {
		StockActual int `json:"stock_actual"`
	}
	decodeJSON(t, resp, &art)
	return art.StockActual
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_VentaDirecta(t *testing.T) {
	env := setupTestEnv(t)
	articuloID := env.crearArticulo(t, "E2E-001", 10)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"lineas": []map[string]any{
				{"articulo_id": articuloID, "cantidad": 3, "precio_cordoba": "150"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		Numero       string `json:"numero"`
		TotalCordoba string `json:"total_cordoba"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "F000001", venta.Numero)
	assert.Equal(t, "450", venta.TotalCordoba)

	assert.Equal(t, 7, env.stockActual(t, articuloID))

	listResp := do(t, env.server, "GET", "/v1/ventas", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.EqualValues(t, 1, list.Total)
}

func TestE2E_RemisionHastaFactura(t *testing.T) {
	env := setupTestEnv(t)
	articuloID := env.crearArticulo(t, "E2E-002", 10)

	remResp := do(t, env.server, "POST", "/v1/remisiones",
		jsonBody(t, map[string]any{
			"lineas": []map[string]any{
				{"articulo_id": articuloID, "cantidad": 4, "precio_cordoba": "150"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, remResp.StatusCode)
	var rem struct {
		ID     string `json:"id"`
		Numero string `json:"numero"`
		Lineas []struct {
			ID string `json:"id"`
		} `json:"lineas"`
	}
	decodeJSON(t, remResp, &rem)
	assert.Equal(t, "REM-000001", rem.Numero)
	require.Len(t, rem.Lineas, 1)

	// Shipment already took the stock.
	assert.Equal(t, 6, env.stockActual(t, articuloID))

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"lineas": []map[string]any{
				{"articulo_id": articuloID, "remision_detalle_id": rem.Lineas[0].ID, "cantidad": 4, "precio_cordoba": "150"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)

	// Invoicing a shipped line moves no further stock.
	assert.Equal(t, 6, env.stockActual(t, articuloID))

	detResp := do(t, env.server, "GET", "/v1/remisiones/"+rem.ID, nil, env.token)
	require.Equal(t, http.StatusOK, detResp.StatusCode)
	var det struct {
		Facturada bool `json:"facturada"`
	}
	decodeJSON(t, detResp, &det)
	assert.True(t, det.Facturada)
}

func TestE2E_VentaSinStock(t *testing.T) {
	env := setupTestEnv(t)
	articuloID := env.crearArticulo(t, "E2E-003", 2)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"lineas": []map[string]any{
				{"articulo_id": articuloID, "cantidad": 5, "precio_cordoba": "150"},
			},
		}), env.token)
	defer ventaResp.Body.Close()
	assert.Equal(t, http.StatusConflict, ventaResp.StatusCode)

	// Rejected atomically: nothing moved.
	assert.Equal(t, 2, env.stockActual(t, articuloID))
}

func TestE2E_LedgerConsistente(t *testing.T) {
	env := setupTestEnv(t)
	articuloID := env.crearArticulo(t, "E2E-004", 5)

	compraResp := do(t, env.server, "POST", "/v1/compras",
		jsonBody(t, map[string]any{
			"numero_factura": "PROV-100",
			"lineas": []map[string]any{
				{"articulo_id": articuloID, "cantidad": 7, "costo_cordoba": "100"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, compraResp.StatusCode)
	compraResp.Body.Close()

	ajusteResp := do(t, env.server, "POST", "/v1/movimientos/ajuste",
		jsonBody(t, map[string]any{
			"articulo_id": articuloID,
			"cantidad":    -2,
			"motivo":      "pieza dañada en bodega",
		}), env.token)
	require.Equal(t, http.StatusCreated, ajusteResp.StatusCode)
	ajusteResp.Body.Close()

	assert.Equal(t, 10, env.stockActual(t, articuloID))

	audResp := do(t, env.server, "GET", "/v1/articulos/"+articuloID+"/auditoria", nil, env.token)
	require.Equal(t, http.StatusOK, audResp.StatusCode)
	var aud struct {
		StockActual int  `json:"stock_actual"`
		SaldoLedger int  `json:"saldo_ledger"`
		Consistente bool `json:"consistente"`
	}
	decodeJSON(t, audResp, &aud)
	assert.True(t, aud.Consistente)
	assert.Equal(t, 10, aud.StockActual)
	assert.Equal(t, 10, aud.SaldoLedger)
}
