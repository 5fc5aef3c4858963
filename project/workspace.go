package project

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
)

// Decision tells the workspace what to do
// with a modified document being closed.
type Decision int

const (
	KeepOpen Decision = iota
	Discard
	SaveAndClose
)

// Workspace keeps the documents open in an editing
// session, at most one per file.
type Workspace struct {
	docs   []Document
	logger *log.Logger
}

// NewWorkspace returns an empty workspace.
// A nil logger discards messages.
func NewWorkspace(logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Workspace{logger: logger}
}

// Open adds doc to the workspace. If a document with
// the same path is already open, that one is returned
// instead.
func (w *Workspace) Open(doc Document) Document {
	if open, ok := w.Find(doc.Path()); ok {
		return open
	}

	w.docs = append(w.docs, doc)
	w.logger.Printf("opened %s", doc.Path())

	return doc
}

// Find returns the open document saved to path.
func (w *Workspace) Find(path string) (Document, bool) {
	for _, doc := range w.docs {
		if doc.Path() == path {
			return doc, true
		}
	}

	return nil, false
}

// Documents returns the open documents in opening order.
func (w *Workspace) Documents() []Document {
	return slices.Clone(w.docs)
}

// Modified returns the paths of unsaved documents.
func (w *Workspace) Modified() []string {
	var paths []string

	for _, doc := range w.docs {
		if doc.IsModified() {
			paths = append(paths, doc.Path())
		}
	}

	return paths
}

// Close closes the document saved to path. For a
// modified document decide chooses whether to keep it,
// drop the changes or save first. Close reports whether
// the document was closed.
func (w *Workspace) Close(path string, decide func(Document) Decision) (bool, error) {
	index := slices.IndexFunc(w.docs, func(doc Document) bool {
		return doc.Path() == path
	})

	if index < 0 {
		return false, fmt.Errorf("close %s: %w", path, ErrNotOpen)
	}

	doc := w.docs[index]

	if doc.IsModified() {
		switch decision := decide(doc); decision {
		case KeepOpen:
			return false, nil

		case SaveAndClose:
			if err := doc.Save(); err != nil {
				return false, fmt.Errorf("close %s: %w", path, err)
			}

		case Discard:
			w.logger.Printf("discarded changes to %s", path)

		default:
			w.logger.Printf("unknown decision %d for %s, keeping it open", decision, path)
			return false, nil
		}
	}

	w.docs = slices.Delete(w.docs, index, index+1)
	w.logger.Printf("closed %s", path)

	return true, nil
}

// SaveAll saves every open document. Documents
// failing to save don't stop the others.
func (w *Workspace) SaveAll() error {
	var errs []error

	for _, doc := range w.docs {
		if err := doc.Save(); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", doc.Path(), err))
			continue
		}

		w.logger.Printf("saved %s", doc.Path())
	}

	return errors.Join(errs...)
}

// ErrNotOpen is returned when closing a document
// which is not in the workspace.
var ErrNotOpen = errors.New("document not open")
