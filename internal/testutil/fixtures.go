// internal/testutil/fixtures.go
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FixtureUsernames contiene candidatos típicos de una wordlist.
var FixtureUsernames = []string{
	"admin",
	"root",
	"ghost",
	"cached_user",
	"broken",
	"slowuser",
}

// Wordlist genera n candidatos con una línea en blanco cada blankEvery líneas.
// Devuelve el contenido y el número de candidatos no vacíos.
func Wordlist(n, blankEvery int) (string, int) {
	var sb strings.Builder
	nonBlank := 0
	for i := 1; i <= n; i++ {
		if blankEvery > 0 && i%blankEvery == 0 {
			sb.WriteString("   \n")
			continue
		}
		fmt.Fprintf(&sb, "user%04d\n", i)
		nonBlank++
	}
	return sb.String(), nonBlank
}

// WriteFile escribe content en un archivo temporal y retorna su ruta.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
