package middleware

import (
	"net/http"
	"sync"
	"time"

	"ayher/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Sliding-window rate limiting per client IP. One map for login attempts with
// a hard-coded tight limit, one for general API traffic.

type ventana struct {
	count int
	fin   time.Time
	mu    sync.Mutex
}

var (
	loginMap   = make(map[string]*ventana)
	loginMapMu sync.Mutex

	apiMap   = make(map[string]*ventana)
	apiMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if excedido(loginMap, &loginMapMu, c.ClientIP(), 20, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general-purpose API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if excedido(apiMap, &apiMapMu, c.ClientIP(), limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

func excedido(m map[string]*ventana, mu *sync.Mutex, ip string, limit int, window time.Duration) bool {
	mu.Lock()
	v, ok := m[ip]
	if !ok {
		v = &ventana{}
		m[ip] = v
	}
	mu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if now.After(v.fin) {
		v.count = 0
		v.fin = now.Add(window)
	}
	v.count++
	return v.count > limit
}

// Expired windows accumulate one entry per IP; purge them periodically.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeLoop()
}

func purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		purged := purgeMap(loginMap, &loginMapMu) + purgeMap(apiMap, &apiMapMu)
		if purged > 0 {
			log.Debug().Int("purged", purged).Msg("rate limiter: ventanas expiradas purgadas")
		}
	}
}

func purgeMap(m map[string]*ventana, mu *sync.Mutex) int {
	now := time.Now()
	purged := 0
	mu.Lock()
	for ip, v := range m {
		v.mu.Lock()
		if now.After(v.fin) {
			delete(m, ip)
			purged++
		}
		v.mu.Unlock()
	}
	mu.Unlock()
	return purged
}
