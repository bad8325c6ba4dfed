// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// Host validators

// IsDomain verifica si un string es un nombre de host válido (no una IP).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	return net.ParseIP(domain) == nil
}

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsHost acepta un dominio o una IP, sin puerto.
func IsHost(host string) bool {
	return IsDomain(host) || IsIP(host)
}

// IsPort verifica si un string es un puerto válido.
func IsPort(portStr string) bool {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return false
	}
	return port > 0 && port <= 65535
}

// URL validators

// IsURL verifica que haya scheme y host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	return parsed.Scheme != "" && parsed.Host != ""
}

// IsHTTPURL verifica una URL base http(s) con host y puerto válidos.
func IsHTTPURL(urlStr string) bool {
	return hasScheme(urlStr, "http", "https")
}

// IsProxyURL verifica una URL de proxy http, https o socks5.
func IsProxyURL(urlStr string) bool {
	return hasScheme(urlStr, "http", "https", "socks5", "socks5h")
}

func hasScheme(urlStr string, schemes ...string) bool {
	if !IsURL(urlStr) {
		return false
	}
	parsed, _ := url.Parse(urlStr)

	ok := false
	for _, s := range schemes {
		if strings.EqualFold(parsed.Scheme, s) {
			ok = true
			break
		}
	}
	if !ok || !IsHost(parsed.Hostname()) {
		return false
	}
	if p := parsed.Port(); p != "" && !IsPort(p) {
		return false
	}
	return true
}

// Header validators

// IsHeaderName verifica que name sea un token HTTP (RFC 7230).
func IsHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0
}

// IsHeaderValue rechaza saltos de línea y caracteres de control.
func IsHeaderValue(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\t' {
			continue
		}
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}

// String validators

// IsEmpty verifica si un string está vacío (después de trim).
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
