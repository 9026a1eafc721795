package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/gesture"
)

// loadScriptFile reads a gesture script, choosing YAML for .yaml and .yml
// files and JSON otherwise. Failures are written through f.
func loadScriptFile(f *OutputFormatter, path string) (*gesture.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeRead, fmt.Errorf("read script: %w", err), nil)
	}

	var sc *gesture.Script
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sc, err = gesture.LoadScriptYAML(data)
	default:
		sc, err = gesture.LoadScript(data)
	}
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("%s: %w", path, err), nil)
	}
	return sc, nil
}
