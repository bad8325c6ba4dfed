// cmd/userenum/main_test.go
package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"userenum/internal/testutil"
)

func gitlabServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/users/"), "/exists")
		switch name {
		case "admin":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"exists":true}`))
		case "cached_user":
			w.WriteHeader(http.StatusNotModified)
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"exists":false}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	for _, k := range []string{"USERENUM_CONFIG", "USERENUM_OUTPUT", "USERENUM_LOG_LEVEL", "USERENUM_PROXY"} {
		t.Setenv(k, "")
	}
	var stdout, stderr bytes.Buffer
	code := run(ctx, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_EndToEnd(t *testing.T) {
	srv := gitlabServer(t)
	list := testutil.WriteFile(t, "users.txt", "admin\n\nghost\n  cached_user  \nbroken\n")

	code, stdout, _ := runCLI(t, context.Background(), "-u", srv.URL, "-w", list, "--no-progress", "-t", "2")

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertContains(t, stdout, "[*] Starting GitLab user enumeration (handles 304 responses)", "banner")
	testutil.AssertContains(t, stdout, "[+] User found: admin", "found via json")
	testutil.AssertContains(t, stdout, "[+] User found: cached_user", "found via 304")
	testutil.AssertContains(t, stdout, "[!] broken: Unexpected HTTP 500", "unexpected status")
	testutil.AssertNotContains(t, stdout, "User not found: ghost", "misses hidden without verbose")
	testutil.AssertContains(t, stdout, "4 submitted, 4 completed, 2 found, 1 not found, 1 errors", "summary")
}

func TestRun_Verbose(t *testing.T) {
	srv := gitlabServer(t)
	list := testutil.WriteFile(t, "users.txt", "ghost\n")

	code, stdout, _ := runCLI(t, context.Background(), "-u", srv.URL+"/", "-w", list, "--no-progress", "-v")

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertContains(t, stdout, "[-] User not found: ghost", "verbose shows misses")
}

func TestRun_OutputFile(t *testing.T) {
	srv := gitlabServer(t)
	list := testutil.WriteFile(t, "users.txt", "admin\nghost\ncached_user\n")
	out := filepath.Join(t.TempDir(), "found.txt")

	code, _, _ := runCLI(t, context.Background(), "-u", srv.URL, "-w", list, "--no-progress", "-o", out)

	testutil.AssertEqual(t, code, exitOK, "exit code")
	data, err := os.ReadFile(out)
	testutil.AssertNoError(t, err, "read output")
	lines := testutil.Lines(string(data))
	testutil.AssertEqual(t, len(lines), 2, "found users written")
	testutil.AssertContains(t, lines, "admin", "admin written")
	testutil.AssertContains(t, lines, "cached_user", "cached_user written")
}

func TestRun_MissingWordlist(t *testing.T) {
	srv := gitlabServer(t)

	code, stdout, _ := runCLI(t, context.Background(), "-u", srv.URL, "-w", filepath.Join(t.TempDir(), "nope.txt"), "--no-progress")

	testutil.AssertEqual(t, code, exitFailure, "exit code")
	testutil.AssertContains(t, stdout, "[!] Failed to open wordlist:", "wordlist error line")
	testutil.AssertNotContains(t, stdout, "User found", "no probes")
}

func TestRun_InvalidConfig(t *testing.T) {
	code, _, stderr := runCLI(t, context.Background(), "-u", "gitlab.local")

	testutil.AssertEqual(t, code, exitConfig, "exit code")
	testutil.AssertContains(t, stderr, "Error:", "error printed")
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, context.Background(), "--help")
	testutil.AssertEqual(t, code, exitOK, "help exit code")
	testutil.AssertContains(t, stdout, "USAGE:", "help text")

	code, stdout, _ = runCLI(t, context.Background(), "--version")
	testutil.AssertEqual(t, code, exitOK, "version exit code")
	testutil.AssertContains(t, stdout, "userenum dev", "version text")
}

func TestRun_Interrupted(t *testing.T) {
	srv := gitlabServer(t)
	content, _ := testutil.Wordlist(200, 0)
	list := testutil.WriteFile(t, "users.txt", content)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, stdout, _ := runCLI(t, ctx, "-u", srv.URL, "-w", list, "--no-progress")

	testutil.AssertEqual(t, code, exitInterrupted, "exit code")
	testutil.AssertContains(t, stdout, "Interrupted", "interruption reported")
}
