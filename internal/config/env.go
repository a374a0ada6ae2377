package config

import (
	"bufio"
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// projectEnvFile is looked up in the working directory, so a catalog
// checked into a repo can ship its own speech and server settings.
const projectEnvFile = ".sayso.env"

// envKeyRE is the POSIX shell identifier shape. Anything else in key
// position is a parse error rather than a silently exported oddity.
var envKeyRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadEnvFiles folds sayso env files into the process environment
// before config is read. The global file loads first and the project
// file over it; variables the shell already exports are left alone.
// Missing or malformed files contribute nothing rather than failing
// startup.
func LoadEnvFiles() {
	merged := make(map[string]string)
	for _, path := range []string{GlobalEnvPath(), projectEnvFile} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		vars, err := ParseEnvFile(data)
		if err != nil {
			continue
		}
		maps.Copy(merged, vars)
	}

	for key, value := range merged {
		if _, exported := os.LookupEnv(key); exported {
			continue
		}
		_ = os.Setenv(key, value)
	}
}

// ParseEnvFile reads KEY=VALUE pairs, one per line. Blank lines and #
// comments are skipped, an "export " prefix is tolerated so the same
// file can be sourced by a shell, and a matching pair of quotes around
// a value is stripped.
func ParseEnvFile(data []byte) (map[string]string, error) {
	vars := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("env line %d: %q is not KEY=VALUE", n, line)
		}
		key = strings.TrimSpace(key)
		if !envKeyRE.MatchString(key) {
			return nil, fmt.Errorf("env line %d: bad variable name %q", n, key)
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars, sc.Err()
}

// unquote strips one matching pair of single or double quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// GlobalEnvPath returns where 'sayso init' points users for settings
// shared across projects.
func GlobalEnvPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sayso", "env")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "sayso", "env")
}
