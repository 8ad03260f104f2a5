// Package container is a tiny service registry. Bootstrap registers
// the shared singletons (config, logger, clients) once; everything
// downstream resolves them by key instead of threading a dozen
// constructor arguments around.
package container

import (
	"fmt"
	"sync"
)

// Well-known keys.
const (
	KeyConfig    = "config"
	KeyLogger    = "logger"
	KeyMongo     = "mongo"
	KeyDatabase  = "database"
	KeyRedis     = "redis"
	KeyGCS       = "gcs"
	KeyES        = "elasticsearch"
	KeyRabbit    = "rabbit"
	KeyTokens    = "tokens"
	KeyUserLocks = "user_locks"
)

var (
	mu       sync.RWMutex
	services = map[string]any{}
)

// Set registers a singleton under key, replacing any previous value.
func Set(key string, value any) {
	mu.Lock()
	defer mu.Unlock()
	services[key] = value
}

// Get returns the singleton registered under key, or nil.
func Get(key string) any {
	mu.RLock()
	defer mu.RUnlock()
	return services[key]
}

// MustGet resolves key as T and panics when it is missing or of the
// wrong type. Used at wiring time where a miss is a programming error.
func MustGet[T any](key string) T {
	v := Get(key)
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("container: %q is not registered as %T", key, t))
	}
	return t
}

// Reset clears the registry. Test hook.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	services = map[string]any{}
}
