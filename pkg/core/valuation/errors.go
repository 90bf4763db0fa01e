package valuation

import "fmt"

// DomainKind classifies a DomainError. Kinds are comparable with errors.Is.
type DomainKind string

func (k DomainKind) Error() string { return string(k) }

const (
	ErrTerminalUndefined DomainKind = "terminal value undefined"
	ErrInvalidTerm       DomainKind = "invalid term"
	ErrNonFinite         DomainKind = "non-finite value"
)

// DomainError reports assumptions for which the valuation is mathematically
// undefined. No partial result accompanies it.
type DomainError struct {
	Kind   DomainKind
	Detail string
}

func (e *DomainError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is lets errors.Is(err, ErrInvalidTerm) match any DomainError of that kind.
func (e *DomainError) Is(target error) bool {
	k, ok := target.(DomainKind)
	return ok && k == e.Kind
}
