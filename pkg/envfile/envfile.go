// Package envfile loads KEY=VALUE environment-definition files and reads
// secrets from the environment.
//
// Two entry points exist. [Load] injects the file into the process
// environment, which is what most entry points want at startup. [Read]
// parses the file into an [Env] value without touching process state so
// callers can pass configuration explicitly.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
)

// DefaultPath is the file loaded when no path is given.
const DefaultPath = ".env"

// OpenAIAPIKey is the variable holding the OpenAI API key.
const OpenAIAPIKey = "OPENAI_API_KEY" //nolint:gosec // variable name, not a secret

// Env holds variables parsed from an environment-definition file.
type Env map[string]string

// Load reads the given files (DefaultPath when none) into the process
// environment. Variables already set in the process are not overridden.
// Missing files are ignored so that .env files remain optional.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}

	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("envfile: load %s: %w", p, err)
		}
	}

	return nil
}

// Read parses path into an Env without modifying the process environment.
// A missing file yields an empty Env and no error.
func Read(path string) (Env, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return Env{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("envfile: read %s: %w", path, err)
	}

	return Env(vars), nil
}

// Secret returns the value of the named process environment variable, or
// the empty string when it is unset.
func Secret(name string) string {
	return os.Getenv(name)
}

// Lookup returns the value for name from the file, falling back to the
// process environment. A nil Env behaves like an empty one.
func (e Env) Lookup(name string) string {
	if v, ok := e[name]; ok {
		return v
	}

	return Secret(name)
}

var refPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces ${NAME} references in s using Lookup. Bare $ signs, as
// in "$1500", are left alone.
func (e Env) Expand(s string) string {
	return refPattern.ReplaceAllStringFunc(s, func(ref string) string {
		return e.Lookup(ref[2 : len(ref)-1])
	})
}
