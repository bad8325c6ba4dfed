// internal/sources/gitlab/prober.go
package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"userenum/internal/core/domain"
	"userenum/internal/platform/errors"
	"userenum/internal/platform/httpclient"
	"userenum/internal/platform/logx"
)

// maxBodyRead limita la lectura del cuerpo de respuesta (1MB).
const maxBodyRead = 1 << 20

// existsPath es la ruta del endpoint de existencia, plantillada con el candidato.
const existsPath = "/users/%s/exists"

// Getter es la parte de la sesión HTTP que usa el prober.
type Getter interface {
	Get(ctx context.Context, rawURL string) (*http.Response, error)
}

// Options configura el prober.
type Options struct {
	// BaseURL de la instancia GitLab (la barra final se ignora)
	BaseURL string

	// StrictBody convierte un 200 ilegible en OutcomeErrored en vez de OutcomeNotFound
	StrictBody bool

	Logger logx.Logger
}

// Prober comprueba si un usuario existe mediante /users/<name>/exists.
// Es seguro para uso concurrente: solo lee la sesión compartida.
type Prober struct {
	session    Getter
	baseURL    string
	strictBody bool
	logger     logx.Logger
}

// New crea un prober sobre una sesión compartida.
func New(session Getter, opts Options) *Prober {
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}
	return &Prober{
		session:    session,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		strictBody: opts.StrictBody,
		logger:     opts.Logger.With("source", "gitlab"),
	}
}

// URLFor construye la URL de comprobación para un candidato.
func (p *Prober) URLFor(candidate domain.Candidate) string {
	return p.baseURL + fmt.Sprintf(existsPath, url.PathEscape(candidate))
}

// Probe realiza una única petición y clasifica la respuesta:
//
//	200 + {"exists": true}  -> Found
//	200 con cualquier otro cuerpo -> NotFound (o Errored con StrictBody)
//	304                      -> Found (la caché de GitLab implica existencia)
//	otro status              -> Errored "Unexpected HTTP <code>"
//	fallo de transporte      -> Errored "Request failed: <err>"
//
// Nunca reintenta ni propaga errores.
func (p *Prober) Probe(ctx context.Context, candidate domain.Candidate) domain.ProbeResult {
	start := time.Now()
	result := p.probe(ctx, candidate)
	result = result.WithElapsed(time.Since(start))

	p.logger.Debug("probe classified",
		"candidate", candidate,
		"outcome", result.Outcome.String(),
		"status", result.Status,
		"duration_ms", result.Elapsed.Milliseconds(),
	)
	return result
}

func (p *Prober) probe(ctx context.Context, candidate domain.Candidate) domain.ProbeResult {
	resp, err := p.session.Get(ctx, p.URLFor(candidate))
	if err != nil {
		return domain.Errored(candidate, transportDetail(err))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := httpclient.ReadBody(resp, maxBodyRead)
		if err != nil {
			return domain.Errored(candidate, transportDetail(err)).WithStatus(resp.StatusCode)
		}
		exists, err := parseExists(body)
		if err != nil && p.strictBody {
			return domain.Errored(candidate, "Malformed response body").WithStatus(resp.StatusCode)
		}
		if exists {
			return domain.Found(candidate).WithStatus(resp.StatusCode)
		}
		return domain.NotFound(candidate).WithStatus(resp.StatusCode)

	case http.StatusNotModified:
		httpclient.Discard(resp, maxBodyRead)
		return domain.Found(candidate).WithStatus(resp.StatusCode)

	default:
		httpclient.Discard(resp, maxBodyRead)
		return domain.Errored(candidate, fmt.Sprintf("Unexpected HTTP %d", resp.StatusCode)).WithStatus(resp.StatusCode)
	}
}

// transportDetail formatea un fallo de red para el operador.
func transportDetail(err error) string {
	if errors.IsTimeout(err) && !strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return fmt.Sprintf("Request failed: timeout: %v", err)
	}
	return fmt.Sprintf("Request failed: %v", err)
}
