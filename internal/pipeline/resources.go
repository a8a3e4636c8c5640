package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/finapp-br/reciboscan/internal/document"
)

// Workspace is the invocation-scoped temporary directory holding every
// transient artifact of one pipeline run: the original-file copy, rasterized
// pages, and preprocessed images. Concurrent invocations never collide
// because each gets its own directory, and Close removes everything on every
// exit path.
type Workspace struct {
	root string
}

// NewWorkspace creates a fresh temporary directory for one invocation.
func NewWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", "reciboscan-")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory path.
func (w *Workspace) Root() string { return w.root }

var unsafeNameChars = regexp.MustCompile(`[^\w.-]+`)

// SaveOriginal writes the document bytes into the workspace and returns the
// file path. Subprocess tools (pdftoppm, the OCR worker) need a path, not a
// byte slice. The filename is sanitized so shellouts never see whitespace or
// path separators from user uploads.
func (w *Workspace) SaveOriginal(doc document.RawDocument) (string, error) {
	name := unsafeNameChars.ReplaceAllString(filepath.Base(doc.Filename), "_")
	if name == "" || name == "." {
		name = "upload"
	}
	path := filepath.Join(w.root, "original-"+name)
	if err := os.WriteFile(path, doc.Data, 0o600); err != nil {
		return "", fmt.Errorf("writing original copy: %w", err)
	}
	return path, nil
}

// WriteArtifact stores a transient artifact (a preprocessed page, for
// example) under the given name and returns its path.
func (w *Workspace) WriteArtifact(name string, data []byte) (string, error) {
	path := filepath.Join(w.root, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", name, err)
	}
	return path, nil
}

// Close deletes the workspace and everything in it. Safe to call more than
// once.
func (w *Workspace) Close() error {
	if w.root == "" {
		return nil
	}
	err := os.RemoveAll(w.root)
	w.root = ""
	return err
}
