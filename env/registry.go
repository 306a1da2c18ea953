package env

import (
	"errors"
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultID is the identifier the standard environment is registered
// under.
const DefaultID = "UTTT-v0"

// Factory creates a fresh environment instance.
type Factory func() *Env

// ErrUnknownEnv is returned by [New] for identifiers nothing was
// registered under.
var ErrUnknownEnv = errors.New("unknown environment")

var registry = xsync.NewMapOf[string, Factory]()

func init() {
	MustRegister(DefaultID, NewEnv)
}

// Register adds a factory under the given identifier. It fails when the
// identifier is empty or already taken.
func Register(id string, f Factory) error {
	if id == "" {
		return errors.New("empty environment id")
	}
	if f == nil {
		return fmt.Errorf("nil factory for environment %q", id)
	}
	if _, taken := registry.LoadOrStore(id, f); taken {
		return fmt.Errorf("environment %q already registered", id)
	}
	return nil
}

// MustRegister is like [Register] but panics on error. It is intended
// for registration from init functions.
func MustRegister(id string, f Factory) {
	if err := Register(id, f); err != nil {
		panic(err)
	}
}

// New creates an environment by identifier.
func New(id string) (*Env, error) {
	f, ok := registry.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnv, id)
	}
	return f(), nil
}

// IDs returns the registered identifiers in sorted order.
func IDs() []string {
	var ids []string
	registry.Range(func(id string, _ Factory) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}
