// internal/adapters/wordlist/wordlist.go
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"userenum/internal/core/domain"
	"userenum/internal/platform/errors"
)

// maxLineSize es la línea más larga aceptada (1MB).
const maxLineSize = 1 << 20

// Reader entrega una línea por candidato de forma perezosa.
// Los bytes UTF-8 inválidos se descartan en lugar de abortar.
// Las líneas en blanco se devuelven tal cual: filtrarlas es tarea del dispatcher.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	err     error
	lines   int
}

// Open abre la wordlist en path. Un fallo se marca con ErrSourceUnreadable.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open wordlist %s", path), errors.ErrSourceUnreadable)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Mark(errors.Wrapf(err, "stat wordlist %s", path), errors.ErrSourceUnreadable)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.Wrapf(errors.ErrSourceUnreadable, "wordlist %s is a directory", path)
	}

	r := NewReader(f)
	r.closer = f
	return r, nil
}

// NewReader envuelve un io.Reader arbitrario.
func NewReader(src io.Reader) *Reader {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: sc}
}

// Next retorna la siguiente línea sin el salto de línea.
func (r *Reader) Next() (domain.Candidate, bool) {
	if r.err != nil {
		return "", false
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = errors.Mark(errors.Wrapf(err, "read wordlist line %d", r.lines+1), errors.ErrSourceUnreadable)
		}
		return "", false
	}
	r.lines++
	return strings.ToValidUTF8(r.scanner.Text(), ""), true
}

// Err retorna el error de lectura, si lo hubo.
func (r *Reader) Err() error {
	return r.err
}

// Lines retorna cuántas líneas se han leído.
func (r *Reader) Lines() int {
	return r.lines
}

// Close cierra el archivo subyacente cuando lo hay.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
