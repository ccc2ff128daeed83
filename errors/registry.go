package errors

import (
	"runtime"
	"weak"

	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-error/helper"
	"github.com/thanhminhmr/go-error/internal"
)

// Registry maps names to Types. It only keeps weak references: a Type that
// is no longer referenced anywhere else is collected and its name becomes
// available again. A Registry is safe for concurrent use.
type Registry struct {
	logger *zerolog.Logger
	types  helper.SyncMap[string, weak.Pointer[Type]]
}

// Default is the process-wide Registry used by NewType, GetType, DeleteType
// and ResetTypes.
var Default = NewRegistry(nil)

// NewRegistry creates an empty Registry logging to logger, nil disables
// logging.
func NewRegistry(logger *zerolog.Logger) *Registry {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Registry{logger: logger}
}

type registryEntry struct {
	name    string
	pointer weak.Pointer[Type]
}

// NewType creates and registers a Type. The name must be 1 to 127 bytes long,
// start with an ASCII letter and continue with ASCII letters, digits, '_' or
// '.'. It fails with a ValidationError for an invalid name and with a
// ConflictError when the name is already registered.
func (r *Registry) NewType(name string, code int, message any) (*Type, error) {
	t, err := r.newType(name, code, message, 1)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Registry) newType(name string, code int, message any, skip int) (*Type, *Error) {
	if reason := internal.CheckTypeName(name); reason != "" {
		return nil, fail(ValidationError, skip+1, "invalid error type name: %s", reason)
	}
	t := &Type{name: name, code: code, message: message}
	pointer := weak.Make(t)
	for {
		actual, exists := r.types.PutIfAbsent(name, pointer)
		if !exists {
			break
		}
		if actual.Value() != nil {
			return nil, fail(ConflictError, skip+1, "error type %q already exists", name)
		}
		// the previous Type was collected but its cleanup has not run yet
		if r.types.Replace(name, actual, pointer) {
			break
		}
	}
	runtime.AddCleanup(t, r.cleanup, registryEntry{name: name, pointer: pointer})
	r.logger.Trace().Str("name", name).Int("code", code).Msg("Error type registered")
	return t, nil
}

func (r *Registry) cleanup(entry registryEntry) {
	if r.types.RemoveIfEquals(entry.name, entry.pointer) {
		r.logger.Trace().Str("name", entry.name).Msg("Error type collected")
	}
}

// Get returns the Type registered under name, nil if there is none.
func (r *Registry) Get(name string) (*Type, error) {
	pointer, exists := r.types.Get(name)
	if !exists {
		return nil, nil
	}
	t := pointer.Value()
	if t == nil {
		r.types.RemoveIfEquals(name, pointer)
		return nil, nil
	}
	if t.name != name {
		return nil, fail(InternalError, 1, "registry entry %q holds error type %q", name, t.name)
	}
	return t, nil
}

// Delete removes the Type registered under name and reports whether there
// was one.
func (r *Registry) Delete(name string) bool {
	pointer, exists := r.types.Remove(name)
	if !exists || pointer.Value() == nil {
		return false
	}
	r.logger.Trace().Str("name", name).Msg("Error type deleted")
	return true
}

// Range calls f for every registered Type until f returns false.
func (r *Registry) Range(f func(t *Type) bool) {
	r.types.ForEach(func(_ string, pointer weak.Pointer[Type]) bool {
		if t := pointer.Value(); t != nil {
			return f(t)
		}
		return true
	})
}

// Reset removes every registered Type.
func (r *Registry) Reset() {
	r.types.Clear()
	r.logger.Trace().Msg("Error types reset")
}

// NewType creates a Type in the Default Registry.
func NewType(name string, code int, message any) (*Type, error) {
	t, err := Default.newType(name, code, message, 1)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetType returns the Type registered under name in the Default Registry.
func GetType(name string) (*Type, error) {
	return Default.Get(name)
}

// DeleteType removes name from the Default Registry.
func DeleteType(name string) bool {
	return Default.Delete(name)
}

// ResetTypes removes every Type from the Default Registry.
func ResetTypes() {
	Default.Reset()
}
