// Package pdfcpueng implements the document engine on top of pdfcpu for
// page surgery and ledongthuc/pdf for the text layer. Every open document
// gets a private working copy on disk, so page edits never touch the
// original file until Save.
package pdfcpueng

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dgallion1/freebird/internal/engine"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

type handle struct {
	id       string
	workPath string
	pages    int
}

func (h *handle) ID() string { return h.id }

// Engine is the pdfcpu-backed implementation of engine.Engine.
type Engine struct {
	workDir string
	conf    *model.Configuration
	log     *slog.Logger
}

// New returns an engine that keeps working copies under workDir.
// An empty workDir means the system temp directory.
func New(workDir string, log *slog.Logger) *Engine {
	if workDir == "" {
		workDir = os.TempDir()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		workDir: workDir,
		conf:    model.NewDefaultConfiguration(),
		log:     log,
	}
}

func (e *Engine) workPath(id string) string {
	return filepath.Join(e.workDir, "freebird-"+id+".pdf")
}

func (e *Engine) Open(path string) (engine.Handle, error) {
	h := &handle{id: uuid.NewString()}
	h.workPath = e.workPath(h.id)

	if err := copyFile(path, h.workPath); err != nil {
		return nil, fmt.Errorf("copy to working file: %w", err)
	}

	n, err := api.PageCountFile(h.workPath)
	if err != nil {
		os.Remove(h.workPath)
		return nil, fmt.Errorf("count pages: %w", err)
	}
	h.pages = n

	e.log.Debug("opened document", slog.String("path", path), slog.Int("pages", n))
	return h, nil
}

// NewEmpty returns a handle with zero pages. The working file is created
// lazily by the first InsertPages call.
func (e *Engine) NewEmpty() (engine.Handle, error) {
	h := &handle{id: uuid.NewString()}
	h.workPath = e.workPath(h.id)
	return h, nil
}

func (e *Engine) PageCount(h engine.Handle) (int, error) {
	return h.(*handle).pages, nil
}

// InsertPages appends pages [from, to] of src to dst.
func (e *Engine) InsertPages(dst, src engine.Handle, from, to int) error {
	d := dst.(*handle)
	s := src.(*handle)
	if s.pages == 0 {
		return engine.ErrEmptyDocument
	}
	if from < 0 || to >= s.pages || from > to {
		return engine.ErrPageOutOfRange
	}

	extract := e.workPath(uuid.NewString())
	defer os.Remove(extract)
	if err := api.TrimFile(s.workPath, extract, []string{pageRange(from, to)}, e.conf); err != nil {
		return fmt.Errorf("extract pages: %w", err)
	}

	if d.pages == 0 {
		if err := copyFile(extract, d.workPath); err != nil {
			return fmt.Errorf("seed working file: %w", err)
		}
	} else {
		merged := e.workPath(uuid.NewString())
		defer os.Remove(merged)
		if err := api.MergeCreateFile([]string{d.workPath, extract}, merged, false, e.conf); err != nil {
			return fmt.Errorf("merge pages: %w", err)
		}
		if err := copyFile(merged, d.workPath); err != nil {
			return fmt.Errorf("replace working file: %w", err)
		}
	}

	d.pages += to - from + 1
	return nil
}

func (e *Engine) DeletePage(h engine.Handle, index int) error {
	hd := h.(*handle)
	if index < 0 || index >= hd.pages {
		return engine.ErrPageOutOfRange
	}
	if err := api.RemovePagesFile(hd.workPath, "", []string{strconv.Itoa(index + 1)}, e.conf); err != nil {
		return fmt.Errorf("remove page %d: %w", index, err)
	}
	hd.pages--
	return nil
}

// StampText draws text onto a page at the given offset from the top-left
// corner, in page points.
func (e *Engine) StampText(h engine.Handle, index int, text string, x, y float64) error {
	hd := h.(*handle)
	if index < 0 || index >= hd.pages {
		return engine.ErrPageOutOfRange
	}
	desc := fmt.Sprintf("font:Helvetica, points:12, scale:1 abs, rot:0, opacity:1, pos:tl, off:%.1f %.1f", x, -y)
	wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("stamp description: %w", err)
	}
	if err := api.AddWatermarksFile(hd.workPath, "", []string{strconv.Itoa(index + 1)}, wm, e.conf); err != nil {
		return fmt.Errorf("stamp page %d: %w", index, err)
	}
	return nil
}

func (e *Engine) Save(h engine.Handle, path string, optimize bool) error {
	hd := h.(*handle)
	if hd.pages == 0 {
		return engine.ErrEmptyDocument
	}
	if err := copyFile(hd.workPath, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if optimize {
		if err := api.OptimizeFile(path, "", e.conf); err != nil {
			return fmt.Errorf("optimize %s: %w", path, err)
		}
	}
	return nil
}

func (e *Engine) Close(h engine.Handle) error {
	hd := h.(*handle)
	if err := os.Remove(hd.workPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove working file: %w", err)
	}
	return nil
}

// pageRange formats a zero-based inclusive range as a 1-based pdfcpu
// page selection.
func pageRange(from, to int) string {
	if from == to {
		return strconv.Itoa(from + 1)
	}
	return fmt.Sprintf("%d-%d", from+1, to+1)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
