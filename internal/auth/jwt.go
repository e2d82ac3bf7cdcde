package auth

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const defaultAccessTokenExpireMinutes = 30

type JWTManagerInterface interface {
	GenerateAccessJWT(subject string, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (string, error)
	AccessTokenDuration() time.Duration
}

type JWTManager struct {
	secret   string
	method   *jwt.SigningMethodHMAC
	duration time.Duration
}

// NewJWTManager reads the signing secret, algorithm and token TTL from the
// environment. The secret is mandatory.
func NewJWTManager() JWTManagerInterface {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	method := jwt.SigningMethodHS256
	switch os.Getenv("JWT_ALGORITHM") {
	case "", "HS256":
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		log.Fatalf("unsupported JWT_ALGORITHM %q", os.Getenv("JWT_ALGORITHM"))
	}

	minutes := defaultAccessTokenExpireMinutes
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Fatalf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", v)
		}
		minutes = parsed
	}

	return &JWTManager{
		secret:   jwtSecret,
		method:   method,
		duration: time.Duration(minutes) * time.Minute,
	}
}

func (j *JWTManager) AccessTokenDuration() time.Duration {
	return j.duration
}

// GenerateAccessJWT issues a signed token whose subject is the user's email
// and whose expiry is an absolute instant, now + duration. The random token
// id exists so a revocation denylist could be keyed on it later; tokens are
// otherwise stateless.
func (j *JWTManager) GenerateAccessJWT(subject string, duration time.Duration) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   subject,
		Id:        uuid.NewString(),
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString([]byte(j.secret))
}

// ValidateAccessToken checks the signature and expiry and returns the token
// subject. Malformed input, a signature mismatch or a different signing
// method all fail as invalid; an elapsed expiry fails as expired. There is no
// grace period.
func (j *JWTManager) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != j.method {
			return nil, ErrInvalidJWTToken
		}
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&jwt.ValidationErrorExpired != 0 {
				return "", ErrExpiredJWTToken
			}
		}
		return "", ErrInvalidJWTToken
	}

	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidJWTToken
	}

	return claims.Subject, nil
}
