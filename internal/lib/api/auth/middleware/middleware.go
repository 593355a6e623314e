package middleware

import (
	"errors"
	"net/http"

	custErr "github.com/PIRSON21/scissors/internal/lib/errors"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader - заголовок, в котором клиент передает ключ.
const APIKeyHeader = "X-API-Key"

//go:generate go run github.com/vektra/mockery/v2@v2.53.0 --name=KeyChecker
type KeyChecker interface {
	CheckAPIKey(key string) error
}

// HashKeyChecker сверяет ключ с bcrypt-хэшем из конфига.
type HashKeyChecker struct {
	hash []byte
}

// NewHashKeyChecker создает проверку ключа по хэшу.
func NewHashKeyChecker(hash string) *HashKeyChecker {
	return &HashKeyChecker{hash: []byte(hash)}
}

// CheckAPIKey возвращает ErrUnauthorized, если ключ не подходит к хэшу.
func (c *HashKeyChecker) CheckAPIKey(key string) error {
	err := bcrypt.CompareHashAndPassword(c.hash, []byte(key))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return custErr.ErrUnauthorized
	}

	return err
}

// AuthMiddleware проверяет ключ из заголовка X-API-Key.
func AuthMiddleware(checker KeyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := checker.CheckAPIKey(key); err != nil {
				if errors.Is(err, custErr.ErrUnauthorized) {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}

				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
