// Package httpapi is the public JSON API: routing, session cookies, request
// guards and error rendering.
package httpapi

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/logging"
	"github.com/sooldama/sooldama/internal/server/auth"
	"github.com/sooldama/sooldama/internal/server/config"
)

// NewSessionStore returns the server-side session store. The cookie only
// carries a signed session identifier. An empty secret is replaced with a
// random one, which invalidates sessions on restart.
//
// SessionTTL bounds both the cookie Max-Age and the signature timestamp, so a
// cookie replayed after the TTL no longer decodes and the request is
// anonymous.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	secret := cfg.SessionSecret
	if secret == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
		secret = s
	}

	store := memstore.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
	})
	if m, ok := store.(interface{ MaxAge(int) }); ok {
		m.MaxAge(int(cfg.SessionTTL.Seconds()))
	}
	return store, nil
}

// NewRouter wires gin routes and middleware.
func NewRouter(cfg *config.Config, store sessions.Store, l logging.Logger, gate *auth.Gate,
	users UserService, products ProductService) *gin.Engine {

	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery(l))
	r.Use(RequestLogger(l))
	r.Use(sessions.Sessions(cfg.SessionCookieName, store))

	guard := NewInterceptors(gate)
	uh := NewUserHandler(users)
	ph := NewProductHandler(products)

	usersGroup := r.Group("/users")
	{
		usersGroup.POST("", uh.Join)
		usersGroup.POST("/login", guard.AnonymousRequired, uh.Login)
		usersGroup.POST("/logout", guard.AuthRequired, uh.Logout)
		usersGroup.GET("/:id", guard.AuthRequired, uh.GetUser)
	}

	productsGroup := r.Group("/products", guard.AuthRequired)
	{
		productsGroup.GET("", ph.GetProducts)
		productsGroup.GET("/:id", ph.GetProduct)
	}

	return r
}
