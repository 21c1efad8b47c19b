package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConverterBackendPipesStdinToStdout(t *testing.T) {
	// cat stands in for the converter: whatever HTML goes in comes back out
	b := NewConverterBackend("cat", nil, 5*time.Second)

	doc := Document{HTML: "%PDF-1.4\nnot really a pdf but close enough\n"}
	out, err := b.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, []byte(doc.HTML)) {
		t.Errorf("stdout not captured faithfully: %q", out)
	}
}

func TestConverterBackendRejectsNonPDFOutput(t *testing.T) {
	b := NewConverterBackend("cat", nil, 5*time.Second)

	_, err := b.Render(context.Background(), Document{HTML: "<html></html>"})
	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if !strings.Contains(berr.Diagnostic, "invalid PDF") {
		t.Errorf("unexpected diagnostic %q", berr.Diagnostic)
	}
}

func TestConverterBackendSurfacesStderr(t *testing.T) {
	b := NewConverterBackend("sh", []string{"-c", "echo conversion exploded >&2; exit 3"}, 5*time.Second)

	_, err := b.Render(context.Background(), Document{HTML: "<html></html>"})
	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if berr.Timeout {
		t.Error("exit failure is not a timeout")
	}
	if !strings.Contains(berr.Diagnostic, "conversion exploded") {
		t.Errorf("stderr must be the diagnostic payload, got %q", berr.Diagnostic)
	}
}

func TestConverterBackendTimeoutKillsProcess(t *testing.T) {
	b := NewConverterBackend("sh", []string{"-c", "sleep 30"}, 100*time.Millisecond)

	start := time.Now()
	_, err := b.Render(context.Background(), Document{HTML: "<html></html>"})
	elapsed := time.Since(start)

	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if !berr.Timeout {
		t.Error("expected a timeout error")
	}
	if elapsed > 5*time.Second {
		t.Errorf("hung render was not killed promptly (%v)", elapsed)
	}
}

func TestConverterBackendAppendsStdioMarkers(t *testing.T) {
	// $0 and $1 pick up the trailing markers the backend must supply
	b := NewConverterBackend("sh", []string{"-c", `echo "%PDF-1.4 $0 $1"`}, 5*time.Second)

	out, err := b.Render(context.Background(), Document{HTML: "<html></html>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out, []byte("%PDF-1.4 - -")) {
		t.Errorf("stdin/stdout markers not appended, got %q", out)
	}
}

func TestConverterBackendMissingBinary(t *testing.T) {
	b := NewConverterBackend("/nonexistent/wkhtmltopdf", nil, time.Second)

	_, err := b.Render(context.Background(), Document{HTML: "<html></html>"})
	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
}
