// Package identity holds the operators allowed to drive solver sessions.
package identity

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	namePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minNameLength = 3
	maxNameLength = 20

	hashCost = 12
)

var (
	nameRegex = regexp.MustCompile(namePattern)

	ErrNameTooShort    = errors.New("operator name too short")
	ErrNameTooLong     = errors.New("operator name too long")
	ErrNameFormat      = errors.New("invalid operator name format")
	ErrWeakPassword    = errors.New("weak password")
	ErrOperatorMissing = errors.New("operator not found")
	ErrNameConflict    = errors.New("operator name conflict")
)

// Operator is an account that may open solver sessions and owns their round records.
type Operator struct {
	ID           uuid.UUID `bson:"_id"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// OperatorConfig holds the parameters for creating an Operator from a plain password.
type OperatorConfig struct {
	ID            uuid.UUID
	Name          string
	PlainPassword string
}

// NewOperator validates the name and password strength and returns an Operator holding the
// bcrypt hash of the password.
func NewOperator(config OperatorConfig) (*Operator, error) {
	if err := validateName(config.Name); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(config.PlainPassword)
	if err != nil {
		return nil, err
	}

	return &Operator{
		ID:           config.ID,
		Name:         config.Name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (o *Operator) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password))
	return err == nil
}

func validateName(name string) error {
	if len(name) < minNameLength {
		return ErrNameTooShort
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if !nameRegex.MatchString(name) {
		return ErrNameFormat
	}
	return nil
}

// validatePassword checks the strength of the password.
func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}
