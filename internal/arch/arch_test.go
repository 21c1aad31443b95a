// ./internal/arch/arch_test.go
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

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"seqkernel/core/": {
			"seqkernel/internal/", "seqkernel/pkg/", "seqkernel/cmd/",
		},
		"seqkernel/pkg/api": {
			"seqkernel/core/", "seqkernel/internal/", "seqkernel/cmd/",
		},
		"seqkernel/internal/dispatch": {
			"seqkernel/internal/pipeline", "seqkernel/internal/writers",
			"seqkernel/internal/output", "seqkernel/internal/pretty",
			"seqkernel/internal/cli", "seqkernel/cmd/",
		},
		"seqkernel/internal/pipeline": {
			"seqkernel/internal/cli", "seqkernel/internal/appshell", "seqkernel/cmd/",
		},
		"seqkernel/internal/writers": {
			"seqkernel/internal/cli", "seqkernel/internal/appshell",
			"seqkernel/internal/pipeline", "seqkernel/internal/dispatch", "seqkernel/cmd/",
		},
		"seqkernel/internal/output": {
			"seqkernel/internal/cli", "seqkernel/internal/appshell",
			"seqkernel/internal/pipeline", "seqkernel/internal/dispatch", "seqkernel/cmd/",
		},
		"seqkernel/internal/pretty": {
			"seqkernel/internal/cli", "seqkernel/internal/appshell",
			"seqkernel/internal/pipeline", "seqkernel/internal/dispatch", "seqkernel/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "seqkernel/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "seqkernel/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
