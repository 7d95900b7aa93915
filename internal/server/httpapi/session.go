package httpapi

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
	"github.com/sooldama/sooldama/internal/server/session"
)

// ginSession exposes the cookie-backed session of a gin request as a
// session.Session. Writes are saved immediately so the cookie goes out with
// the response headers.
type ginSession struct {
	s sessions.Session
}

func sessionFrom(c *gin.Context) session.Session {
	return ginSession{s: sessions.Default(c)}
}

func (g ginSession) Get(key string) (string, bool) {
	v, ok := g.s.Get(key).(string)
	return v, ok
}

func (g ginSession) Set(key, value string) error {
	g.s.Set(key, value)
	return g.s.Save()
}

// Renew drops the identifier decoded from the request cookie. The store mints
// a new one on the next save, so the response carries a different cookie.
func (g ginSession) Renew() error {
	raw, ok := g.s.(interface{ Session() *gsessions.Session })
	if !ok {
		return errors.New("session store does not expose its session id")
	}
	raw.Session().ID = ""
	return nil
}

func (g ginSession) Invalidate() error {
	g.s.Clear()
	g.s.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	return g.s.Save()
}
