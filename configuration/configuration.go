package configuration

import (
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-error/internal"
)

var (
	globalMutex        sync.RWMutex
	globalDefaults     = make(map[string]string)
	globalEnvironments = make(map[string]string)
)

func init() {
	Reload()
}

// Reload re-reads the .env file and the process environment. The process
// environment has the highest priority, the .env file comes next and the
// defaults registered with SetDefault come last.
func Reload() {
	environments := make(map[string]string)
	if bytes, err := os.ReadFile(".env"); err == nil {
		saveEnvironments(environments, strings.Split(string(bytes), "\n"))
	}
	saveEnvironments(environments, os.Environ())
	globalMutex.Lock()
	globalEnvironments = environments
	globalMutex.Unlock()
}

func saveEnvironments(environments map[string]string, lines []string) {
	for _, line := range lines {
		if line = strings.TrimSpace(line); line == "" || line[0] == '#' {
			continue
		}
		split := strings.SplitN(line, "=", 2)
		if len(split) == 2 {
			environments[strings.TrimSpace(split[0])] = strings.TrimSpace(split[1])
		}
	}
}

func SetDefault(key string, value string) {
	globalMutex.Lock()
	globalDefaults[key] = value
	globalMutex.Unlock()
}

func Load[T any](config *T, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := internal.NewDecoder("env", internal.SplitSemicolonsDecodeHookFunc, config)
	if err != nil {
		return err
	}
	if err := decoder.Decode(getEnvironment(prefix)); err != nil {
		return err
	}
	return internal.Validator.Struct(config)
}

func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

func getEnvironment(prefix string) map[string]string {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	environments := make(map[string]string)
	for key, value := range globalDefaults {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	for key, value := range globalEnvironments {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	return environments
}
