// internal/httpserver/session.go
//
// Anonymous player sessions.
//
// Every request carries a session ID. It comes from an HS256 JWT whose
// subject is a random UUID, read from the "Authorization: Bearer" header or
// the session cookie. Requests without a valid token get a new one minted
// and set as an HttpOnly cookie. Statistics and the rotating session word
// are keyed by this ID. There are no accounts or passwords.

package httpserver

import (
	"context"
	"crypto/rand"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type ctxSessionKey struct{}

type sessions struct {
	secret []byte
	ttl    time.Duration
	cookie string
	secure bool
}

// newSessions builds the session minter. An empty secret is replaced by a
// random one, so tokens do not survive a restart.
func newSessions(secret string, ttl time.Duration, cookie string, secure bool) *sessions {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
		log.Warn().Msg("SESSION_SECRET not set; using an ephemeral key")
	}
	if ttl <= 0 {
		ttl = 180 * 24 * time.Hour
	}
	if cookie == "" {
		cookie = "fbwordle_session"
	}
	return &sessions{secret: key, ttl: ttl, cookie: cookie, secure: secure}
}

// sign creates a token for sid expiring after the session TTL.
func (s *sessions) sign(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parse returns the session ID of a valid token, or "".
func (s *sessions) parse(tok string) string {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

// middleware resolves or mints the session and stores its ID in the context.
func (s *sessions) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if tok := s.bearerOrCookie(r); tok != "" {
			sid = s.parse(tok)
		}
		if sid == "" {
			sid = uuid.NewString()
			tok, exp, err := s.sign(sid)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
			s.setCookie(w, tok, exp)
			hlog.FromRequest(r).Debug().Str("session", sid).Msg("session minted")
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, sid)))
	})
}

func (s *sessions) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the cookie.
func (s *sessions) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cookie); err == nil {
		return c.Value
	}
	return ""
}

// sessionID returns the session resolved by the middleware.
func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	return sid
}
