package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// The scoring core stays free of orchestration, output and CLI concerns;
// output formats never reach back into the dispatcher.
func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "pwmscan/...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	upper := []string{
		"pwmscan/internal/appcore", "pwmscan/internal/app",
		"pwmscan/internal/cli", "pwmscan/cmd/",
	}
	bans := map[string][]string{
		"pwmscan/core/": append([]string{
			"pwmscan/internal/",
		}, upper...),
		"pwmscan/internal/pipeline": append([]string{
			"pwmscan/internal/writers", "pwmscan/internal/metrics",
		}, upper...),
		"pwmscan/internal/writers": append([]string{
			"pwmscan/internal/pipeline", "pwmscan/internal/metrics",
		}, upper...),
		"pwmscan/internal/metrics": append([]string{
			"pwmscan/internal/pipeline", "pwmscan/internal/writers",
		}, upper...),
		"pwmscan/internal/cli": {
			"pwmscan/internal/appcore", "pwmscan/internal/app", "pwmscan/cmd/",
		},
	}

	var violations []string
	seen := 0
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "pwmscan/") {
			continue
		}
		seen++
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "pwmscan/") {
					continue
				}
				for _, ban := range forbidden {
					// exact package, or everything under a ban ending in "/"
					if dep == ban || strings.HasSuffix(ban, "/") && strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if seen == 0 {
		t.Fatalf("go list returned no pwmscan packages")
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
