package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"exportbridge/internal/config"
)

const (
	ContextKeyAuthUser = "auth_user"

	basicRealm = `Basic realm="Login Required"`
)

// BasicAuth returns Gin middleware that requires HTTP Basic credentials
// matching cfg. Rejected requests get a 401 challenge.
func BasicAuth(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !CheckCredentials(cfg, username, password) {
			c.Header("WWW-Authenticate", basicRealm)
			c.Data(http.StatusUnauthorized, "text/plain; charset=utf-8", []byte("Auth failed!"))
			c.Abort()
			return
		}

		c.Set(ContextKeyAuthUser, username)
		c.Next()
	}
}

// CheckCredentials compares a username/password pair against the configured
// credentials. A configured bcrypt hash takes precedence over the plain password.
func CheckCredentials(cfg config.AuthConfig, username, password string) bool {
	if cfg.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1

	var passOK bool
	switch {
	case cfg.PasswordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password)) == nil
	case cfg.Password != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
	}
	return userOK && passOK
}
