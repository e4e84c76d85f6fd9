package version

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
)

// ExternalTools are the programs fastaccel may invoke, in report order.
var ExternalTools = []string{"uv", "pip", "alembic", "python3"}

// toolVersionRegex matches "uv 0.4.18", "pip 24.0 from ..." and
// "Python 3.12.1".
var toolVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:[-+.][A-Za-z0-9.]+)?`)

// ToolInfo describes one external program found on PATH.
type ToolInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Found   bool   `json:"found"`

	// Message explains a missing tool or unreadable version.
	Message string `json:"message,omitempty"`
}

// String returns a one-line summary for the version command.
func (t ToolInfo) String() string {
	switch {
	case !t.Found:
		return fmt.Sprintf("  %-8s not found", t.Name)
	case t.Version == "":
		return fmt.Sprintf("  %-8s unknown version (%s)", t.Name, t.Path)
	default:
		return fmt.Sprintf("  %-8s %s (%s)", t.Name, t.Version, t.Path)
	}
}

// DetectTools looks up every external tool.
func DetectTools() []ToolInfo {
	out := make([]ToolInfo, 0, len(ExternalTools))
	for _, name := range ExternalTools {
		out = append(out, DetectTool(name))
	}
	return out
}

// DetectTool finds name on PATH and asks it for its version.
func DetectTool(name string) ToolInfo {
	return detectTool(name, exec.LookPath, runVersion)
}

func detectTool(name string, lookPath func(string) (string, error), run func(string) (string, error)) ToolInfo {
	path, err := lookPath(name)
	if err != nil {
		return ToolInfo{Name: name, Message: name + " not found in PATH"}
	}

	info := ToolInfo{Name: name, Path: path, Found: true}
	out, err := run(path)
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}
	if v, err := extractVersion(out); err == nil {
		info.Version = v
	} else {
		info.Message = err.Error()
	}
	return info
}

// runVersion executes '<path> --version'.
func runVersion(path string) (string, error) {
	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// extractVersion pulls the first version number out of tool output.
func extractVersion(output string) (string, error) {
	match := toolVersionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: output}
	}
	return match, nil
}

// versionParseError indicates failure to parse version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
