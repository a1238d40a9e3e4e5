package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mdp/identity"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

// Claim keys carried by operator tokens.
const (
	ClaimOperatorID   = "operatorID"
	ClaimOperatorName = "operatorName"
)

// ErrInvalidCredentials is returned by SignIn for an unknown name or a wrong password.
var ErrInvalidCredentials = errors.New("invalid name or password")

var _ i.Authenticator = &Auth{}

// Auth registers operators and issues their tokens.
type Auth struct {
	operatorRepo i.OperatorRepo
	tokenizer    i.Tokenizer
}

// NewAuthService creates an Auth service.
func NewAuthService(r i.OperatorRepo, t i.Tokenizer) (*Auth, error) {
	if r == nil || t == nil {
		return nil, errors.New("auth service needs an operator repo and a tokenizer")
	}
	return &Auth{operatorRepo: r, tokenizer: t}, nil
}

// Register creates and stores a new operator.
func (a *Auth) Register(name, password string) error {
	op, err := identity.NewOperator(identity.OperatorConfig{
		ID:            uuid.New(),
		Name:          name,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	return a.operatorRepo.Save(op)
}

// SignIn checks the operator's credentials and returns a signed token for them.
func (a *Auth) SignIn(name, password string) (*identity.Operator, string, error) {
	op, err := a.operatorRepo.ByName(name)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !op.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		ClaimOperatorID:   op.ID.String(),
		ClaimOperatorName: op.Name,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return op, token, nil
}
