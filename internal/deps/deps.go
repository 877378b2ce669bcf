// Package deps resolves and reports on the external tools the pipeline
// shells out to.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"inkwell/internal/services"
)

// Requirement defines an external dependency inkwell relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Resolve returns the executable to invoke for command. A non-empty override
// path takes precedence over PATH lookup; an override that does not point at
// an executable file is an error rather than a silent fallback, so a stale
// configured path never silently switches tool versions.
func Resolve(command, override string) (string, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		info, err := os.Stat(override)
		if err != nil {
			return "", fmt.Errorf("resolve %s: override path %q: %w", command, override, err)
		}
		if info.IsDir() || info.Mode()&0o111 == 0 {
			return "", fmt.Errorf("resolve %s: override path %q is not executable", command, override)
		}
		return override, nil
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", services.ErrNotFound, command, err)
	}
	return path, nil
}
