// Package docset manages the set of open documents: one per tab, in
// display order, with at most one focused and an optional assembly target
// that transplant operations route to.
package docset

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dgallion1/freebird/internal/doc"
	"github.com/dgallion1/freebird/internal/engine"
)

// Controller owns the ordered collection of open documents. It performs
// unconditional lifecycle work only; save-before-close policy belongs to
// the UI collaborator.
type Controller struct {
	eng       engine.Engine
	log       *slog.Logger
	cacheSize int

	docs    []*doc.Document
	ids     map[*doc.Document]string
	focused *doc.Document

	assemblyCount int
}

// New returns an empty controller. cacheSize is handed to every document's
// render cache; 0 means the default bound.
func New(eng engine.Engine, log *slog.Logger, cacheSize int) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		eng:       eng,
		log:       log,
		cacheSize: cacheSize,
		ids:       make(map[*doc.Document]string),
	}
}

// Documents returns the open documents in display order. The slice is
// shared; callers must not mutate it.
func (c *Controller) Documents() []*doc.Document { return c.docs }

// Focused returns the document the UI is currently showing, or nil.
func (c *Controller) Focused() *doc.Document { return c.focused }

// Focus marks d as the shown document. It must already be in the set.
func (c *Controller) Focus(d *doc.Document) {
	for _, open := range c.docs {
		if open == d {
			c.focused = d
			return
		}
	}
}

// ID returns a stable identifier for an open document, for logging and UI
// bookkeeping.
func (c *Controller) ID(d *doc.Document) string { return c.ids[d] }

// Open loads the PDF at path into a new document and focuses it. If a
// document with the same source path is already open it is focused instead
// and returned without a reload.
func (c *Controller) Open(path string) (*doc.Document, error) {
	for _, open := range c.docs {
		if open.Path() == path {
			c.focused = open
			return open, nil
		}
	}

	d := doc.New(c.eng, c.log, c.cacheSize)
	if err := d.Load(path); err != nil {
		return nil, err
	}
	c.add(d)
	c.focused = d
	return d, nil
}

// OpenAll opens each path in order, skipping duplicates and collecting
// per-file failures. The first newly opened document of the batch gets
// focus, matching the original viewer's multi-open behavior.
func (c *Controller) OpenAll(paths []string) (opened []*doc.Document, errs []error) {
	var first *doc.Document
	for _, p := range paths {
		d, err := c.Open(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		opened = append(opened, d)
		if first == nil {
			first = d
		}
	}
	if first != nil {
		c.focused = first
	}
	return opened, errs
}

// CreateAssembly creates a new empty assembly document named
// "Untitled Assembly N" and focuses it. The model permits several
// assemblies to exist; transplants route to the first in display order.
func (c *Controller) CreateAssembly() (*doc.Document, error) {
	c.assemblyCount++
	name := fmt.Sprintf("Untitled Assembly %d", c.assemblyCount)

	d := doc.New(c.eng, c.log, c.cacheSize)
	if err := d.NewAssembly(name); err != nil {
		c.assemblyCount--
		return nil, err
	}
	c.add(d)
	c.focused = d
	return d, nil
}

// FindAssemblyTarget returns the first document in display order with the
// assembly role, or nil.
func (c *Controller) FindAssemblyTarget() *doc.Document {
	for _, d := range c.docs {
		if d.IsAssembly() {
			return d
		}
	}
	return nil
}

// TransplantPage copies the current page of src into the assembly target
// and focuses the target. Without a target, or when src is itself the
// target, this is a "nothing to do" no-op, reported by the false return,
// not an error.
func (c *Controller) TransplantPage(src *doc.Document) (bool, error) {
	target := c.FindAssemblyTarget()
	if target == nil || target == src || src == nil || !src.Loaded() {
		return false, nil
	}
	page, total := src.PageInfo()
	if total == 0 {
		return false, nil
	}
	if err := target.InsertPagesFrom(src, page, page); err != nil {
		return false, err
	}
	c.focused = target
	c.log.Info("transplanted page", "source", src.Path(), "page", page+1, "target", target.Path())
	return true, nil
}

// TransplantAll copies every page of src into the assembly target and
// focuses the target. No-op without a target, an empty source, or a
// source that is itself the target.
func (c *Controller) TransplantAll(src *doc.Document) (bool, error) {
	target := c.FindAssemblyTarget()
	if target == nil || target == src || src == nil || !src.Loaded() {
		return false, nil
	}
	_, total := src.PageInfo()
	if total == 0 {
		return false, nil
	}
	if err := target.InsertPagesFrom(src, 0, total-1); err != nil {
		return false, err
	}
	c.focused = target
	c.log.Info("transplanted all pages", "source", src.Path(), "pages", total, "target", target.Path())
	return true, nil
}

// ModifiedDocuments returns the open documents with unsaved changes, in
// display order, for the UI's quit prompt.
func (c *Controller) ModifiedDocuments() []*doc.Document {
	var out []*doc.Document
	for _, d := range c.docs {
		if d.Modified() {
			out = append(out, d)
		}
	}
	return out
}

// Close releases d and removes it from the set. Any save-first prompt has
// already happened in the UI by the time this runs. Focus moves to the
// nearest remaining document.
func (c *Controller) Close(d *doc.Document) {
	idx := -1
	for i, open := range c.docs {
		if open == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	d.Close()
	delete(c.ids, d)
	c.docs = append(c.docs[:idx], c.docs[idx+1:]...)

	if c.focused == d {
		c.focused = nil
		if len(c.docs) > 0 {
			if idx >= len(c.docs) {
				idx = len(c.docs) - 1
			}
			c.focused = c.docs[idx]
		}
	}
}

// CloseAll releases every document, used on application shutdown.
func (c *Controller) CloseAll() {
	for i := len(c.docs) - 1; i >= 0; i-- {
		c.docs[i].Close()
	}
	c.docs = nil
	c.ids = make(map[*doc.Document]string)
	c.focused = nil
}

func (c *Controller) add(d *doc.Document) {
	c.docs = append(c.docs, d)
	c.ids[d] = uuid.NewString()
}
