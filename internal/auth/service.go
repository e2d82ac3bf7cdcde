package auth

import (
	"errors"
	"fmt"
	"net/http"

	"smartpay/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(email, password string) (string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login checks the credentials against the stored hash and issues an access
// token with the configured TTL. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *service) Login(email, password string) (string, error) {
	existingUser, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		fmt.Println("error when getting user from database: ", err)
		return "", ErrInternalError
	}

	if !user.DoPasswordsMatch(existingUser.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.Email, s.jwtManager.AccessTokenDuration())
	if err != nil {
		fmt.Println("error during JWT generation")
		return "", ErrInternalError
	}

	return jwtToken, nil
}
