// internal/adapters/output/writer.go
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"userenum/internal/core/domain"
	"userenum/internal/platform/errors"
	"userenum/internal/platform/logx"
)

// Format es el formato del archivo de resultados.
type Format string

const (
	FormatText  Format = "text"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lista los formatos soportados.
var Formats = []Format{FormatText, FormatJSONL, FormatYAML}

// ParseFormat valida un nombre de formato. Vacío equivale a text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSONL, FormatYAML:
		return f, nil
	case "json":
		return FormatJSONL, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", s)
	}
}

// ResultWriter escribe cada resultado en cuanto se entrega, de modo que un
// archivo interrumpido conserva todo lo ya completado.
//
// Sin verbose solo se escriben los usuarios encontrados; en formato text eso
// produce una lista de nombres reutilizable como wordlist.
type ResultWriter struct {
	mu      sync.Mutex
	format  Format
	verbose bool
	logger  logx.Logger

	buf     *bufio.Writer
	closer  io.Closer
	jsonEnc *json.Encoder
	yamlEnc *yaml.Encoder

	written int
	err     error
}

// NewResultWriter crea un writer sobre w. Si w implementa io.Closer se cierra en Close.
func NewResultWriter(w io.Writer, format Format, verbose bool, logger logx.Logger) *ResultWriter {
	if logger == nil {
		logger = logx.Discard()
	}

	rw := &ResultWriter{
		format:  format,
		verbose: verbose,
		logger:  logger.With("component", "result-writer"),
		buf:     bufio.NewWriter(w),
	}
	if c, ok := w.(io.Closer); ok {
		rw.closer = c
	}

	switch format {
	case FormatJSONL:
		rw.jsonEnc = json.NewEncoder(rw.buf)
		rw.jsonEnc.SetEscapeHTML(false)
	case FormatYAML:
		rw.yamlEnc = yaml.NewEncoder(rw.buf)
		rw.yamlEnc.SetIndent(2)
	}
	return rw
}

// Create abre (truncando) el archivo path, creando su directorio si hace falta.
func Create(path string, format Format, verbose bool, logger logx.Logger) (*ResultWriter, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create output file %s", path)
	}
	return NewResultWriter(f, format, verbose, logger), nil
}

// Submitted no hace nada: solo se persisten resultados.
func (w *ResultWriter) Submitted(domain.Candidate) {}

// Report escribe r si corresponde. El primer error de escritura se conserva
// y los siguientes resultados se descartan.
func (w *ResultWriter) Report(r domain.ProbeResult) {
	if !w.verbose && r.Outcome != domain.OutcomeFound {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return
	}
	if err := w.write(r); err != nil {
		w.err = errors.Wrap(err, "failed to write result")
		w.logger.Warn("result output disabled", "error", err.Error())
		return
	}
	w.written++

	// Los encontrados se vuelcan de inmediato.
	if r.Outcome == domain.OutcomeFound {
		if err := w.buf.Flush(); err != nil {
			w.err = errors.Wrap(err, "failed to flush results")
		}
	}
}

func (w *ResultWriter) write(r domain.ProbeResult) error {
	switch w.format {
	case FormatJSONL:
		return w.jsonEnc.Encode(r)
	case FormatYAML:
		return w.yamlEnc.Encode(r)
	default:
		_, err := io.WriteString(w.buf, textLine(r, w.verbose))
		return err
	}
}

func textLine(r domain.ProbeResult, verbose bool) string {
	if !verbose {
		return r.Candidate + "\n"
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s\t%s\t%s\n", r.Outcome, r.Candidate, r.Detail)
	}
	return fmt.Sprintf("%s\t%s\n", r.Outcome, r.Candidate)
}

// Written retorna el número de resultados escritos.
func (w *ResultWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Err retorna el primer error de escritura.
func (w *ResultWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close vuelca lo pendiente y cierra el destino.
func (w *ResultWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	errs := []error{w.err}
	// Sin documentos el encoder de yaml no tiene stream que cerrar.
	if w.yamlEnc != nil && w.written > 0 {
		errs = append(errs, w.yamlEnc.Close())
	}
	errs = append(errs, w.buf.Flush())
	if w.closer != nil {
		errs = append(errs, w.closer.Close())
		w.closer = nil
	}

	w.logger.Debug("result output closed", "written", w.written, "format", string(w.format))
	return errors.Join(errs...)
}
