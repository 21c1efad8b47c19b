package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// ConverterBackend delegates to an external HTML-to-PDF converter such as
// wkhtmltopdf. The rendered HTML is written to the child's stdin and the PDF
// is read from its stdout; stderr is kept as the diagnostic payload. Each
// render spawns its own process, so concurrent renders never share a handle.
type ConverterBackend struct {
	path    string
	args    []string
	timeout time.Duration
}

// NewConverterBackend configures the external converter. args are flags
// only, e.g. ["-q"] for wkhtmltopdf; the trailing "-" "-" stdin/stdout
// markers are appended on every invocation.
func NewConverterBackend(path string, args []string, timeout time.Duration) *ConverterBackend {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ConverterBackend{path: path, args: args, timeout: timeout}
}

func (b *ConverterBackend) Name() string {
	return "converter"
}

func (b *ConverterBackend) Render(ctx context.Context, doc Document) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	argv := append(append([]string{}, b.args...), "-", "-")
	cmd := exec.CommandContext(ctx, b.path, argv...)
	// exec pumps stdin from a goroutine, so writing the document and
	// reading the PDF cannot deadlock on each other
	cmd.Stdin = strings.NewReader(doc.HTML)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &BackendError{
			Backend:    b.Name(),
			Timeout:    true,
			Diagnostic: strings.TrimSpace(stderr.String()),
			Err:        ctx.Err(),
		}
	}
	if err != nil {
		return nil, &BackendError{
			Backend:    b.Name(),
			Diagnostic: strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}

	out := stdout.Bytes()
	if !validPDF(out) {
		return nil, &BackendError{Backend: b.Name(), Diagnostic: "converter produced invalid PDF content"}
	}
	return out, nil
}
