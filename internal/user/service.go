package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 254
	minEmailLength = 3
	bcryptCost     = 12

	// bcrypt only hashes the first 72 bytes and errors on longer input
	maxPasswordLength = 72
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service interface {
	Register(email, fullName, password string) (*User, error)
	GetUserByID(userID int64) (*User, error)
	GetUserByEmail(email string) (*User, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

// DoPasswordsMatch reports whether plaintext matches the stored bcrypt hash.
// A malformed hash compares as false, it never errors out to the caller.
func DoPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(email, fullName, password string) (*User, error) {
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if len(password) > maxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	_, err := s.repo.getUserByEmail(email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		fmt.Println("Error with database request: ", err)
		return nil, ErrInternalError
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		fmt.Println("Error during hashing the password")
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.createUser(user); err != nil {
		fmt.Println("Error during creating the user: ", err)
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) GetUserByID(userID int64) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByEmail(email string) (*User, error) {
	return s.repo.getUserByEmail(email)
}
