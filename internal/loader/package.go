package loader

import (
	"fmt"
	"go/build"
	"os/exec"
	"path/filepath"
	"strings"
)

// getPkgName returns the import path of the package in searchDir
func getPkgName(searchDir string) (string, error) {
	// go list understands modules, build.ImportDir only GOPATH
	cmd := exec.Command("go", "list", "-f={{.ImportPath}}")
	cmd.Dir = searchDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err == nil {
		outStr := strings.TrimSpace(stdout.String())

		// Handle old GOPATH format
		if len(outStr) > 0 && outStr[0] == '_' {
			outStr = strings.TrimPrefix(outStr, "_"+build.Default.GOPATH+"/src/")
		}

		if first, _, _ := strings.Cut(outStr, "\n"); first != "" {
			return first, nil
		}
	}

	abs, err := filepath.Abs(searchDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", searchDir, err)
	}

	pkg, err := build.ImportDir(abs, build.ImportComment)
	if err != nil {
		return "", fmt.Errorf("failed to get package name for directory %s: %w (go list: %s)", searchDir, err, strings.TrimSpace(stderr.String()))
	}

	return pkg.ImportPath, nil
}
