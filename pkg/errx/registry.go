package errx

import (
	"fmt"
	"sync"
)

// Code is a fully qualified error code such as "APPLICATION.NOT_FOUND"
type Code string

func (c Code) String() string { return string(c) }

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error codes of a single domain
type Registry struct {
	prefix string

	mu    sync.RWMutex
	codes map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]definition),
	}
}

// Register declares a code and returns its qualified name
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(fmt.Sprintf("%s.%s", r.prefix, code))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[full] = definition{
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New instantiates a registered code. Unknown codes become internal errors.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.codes[code]
	r.mu.RUnlock()

	if !ok {
		return New(fmt.Sprintf("unregistered error code %s", code), TypeInternal)
	}

	return &Error{
		Code:       string(code),
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}
