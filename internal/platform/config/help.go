// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
userenum - GitLab username enumeration

USAGE:
  userenum -u <gitlab-url> -w <wordlist> [options]

  Probes /users/<name>/exists for every line of the wordlist. A user is
  reported as found on HTTP 200 with {"exists": true} or on HTTP 304.

TARGET OPTIONS:
  -u, --url string         GitLab base URL (required, e.g., https://gitlab.example.com)
  -w, --wordlist string    Path to username wordlist, one name per line (required)

DISPATCH OPTIONS:
  -t, --threads int        Number of concurrent workers (default: 10)
      --backlog int        Pending probes allowed per worker (default: 5)
  -T, --timeout int        Per-request timeout in seconds (default: 10)

HTTP OPTIONS:
      --user-agent string  User-Agent header (default: "Mozilla/5.0")
  -H, --header string      Extra header "Key: Value" (repeatable)
  -p, --proxy string       Proxy URL: http://, https://, socks5:// (optional)
      --rate float         Max requests per second across all workers (0 = unlimited)
  -k, --insecure           Skip TLS certificate verification
      --strict-body        Report malformed HTTP 200 bodies as errors, not misses

OUTPUT OPTIONS:
  -v, --verbose            Also print users not found
  -o, --output string      Write results to file as they complete
      --format string      Output file format: text, jsonl, yaml (default: "text")
      --no-progress        Plain line output, no live progress
      --no-color           Disable colors (NO_COLOR is honored too)

LOGGING:
      --log-level string   debug, info, warn, error (default: "warn")
      --debug              Shortcut for --log-level debug

CONFIG:
      --config string      YAML profile; keys match the ENV names in lower case

INFO:
      --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Basic run:
    userenum -u https://gitlab.example.com -w users.txt

  More workers, show misses too:
    userenum -u https://gitlab.example.com -w users.txt -t 20 -v

  Through Burp with a session cookie:
    userenum -u https://gitlab.example.com -w users.txt -p http://127.0.0.1:8080 -k \
      -H "Cookie: _gitlab_session=..."

  Save found users as JSON Lines:
    userenum -u https://gitlab.example.com -w users.txt -o found.jsonl --format jsonl

ENVIRONMENT VARIABLES:
  USERENUM_URL, USERENUM_WORDLIST, USERENUM_THREADS, USERENUM_BACKLOG,
  USERENUM_TIMEOUT, USERENUM_VERBOSE, USERENUM_USER_AGENT,
  USERENUM_HEADERS (one per line), USERENUM_PROXY, USERENUM_RATE,
  USERENUM_INSECURE, USERENUM_STRICT_BODY, USERENUM_OUTPUT, USERENUM_FORMAT,
  USERENUM_NO_PROGRESS, USERENUM_NO_COLOR, USERENUM_LOG_LEVEL, USERENUM_CONFIG

  Note: CLI flags override environment variables, which override the profile.

EXIT CODES:
  0    run completed (individual request errors do not change this)
  1    wordlist unreadable or runtime failure
  2    invalid configuration
  130  interrupted
`

// PrintHelp escribe la ayuda en w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion escribe la información de versión en w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "userenum %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
