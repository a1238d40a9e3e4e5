package i

import (
	"github.com/beka-birhanu/vinom-mdp/identity"
)

// Authenticator registers operators and signs them in.
type Authenticator interface {
	Register(name, password string) error
	SignIn(name, password string) (*identity.Operator, string, error)
}
