package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// PDFCPU is the default engine. Pages are copied as PDF objects, so links,
// annotations and text survive the round trip.
type PDFCPU struct {
	strict bool
}

func NewPDFCPU(strict bool) *PDFCPU {
	// pdfcpu would otherwise create a config dir under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFCPU{strict: strict}
}

func (c *PDFCPU) Name() string { return EnginePDFCPU }

func (c *PDFCPU) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if c.strict {
		conf.ValidationMode = model.ValidationStrict
	} else {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

func (c *PDFCPU) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.conf())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu: reading %s: %w", path, err)
	}
	return &pdfcpuDocument{codec: c, path: path, data: data, pages: ctx.PageCount}, nil
}

func (c *PDFCPU) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := api.PageCount(f, c.conf())
	if err != nil {
		return 0, fmt.Errorf("pdfcpu: reading %s: %w", path, err)
	}
	return n, nil
}

func (c *PDFCPU) NewAccumulator() Accumulator {
	return &pdfcpuAccumulator{codec: c}
}

type pdfcpuDocument struct {
	codec *PDFCPU
	path  string
	data  []byte
	pages int
}

func (d *pdfcpuDocument) NumPages() int { return d.pages }

func (d *pdfcpuDocument) WritePages(w io.Writer, start, end int) error {
	if d.data == nil {
		return fmt.Errorf("pdfcpu: %s is closed", d.path)
	}
	if err := checkRange(d.pages, start, end); err != nil {
		return err
	}
	sel := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.Trim(bytes.NewReader(d.data), w, sel, d.codec.conf()); err != nil {
		return fmt.Errorf("pdfcpu: writing pages %d-%d of %s: %w", start, end, d.path, err)
	}
	return nil
}

func (d *pdfcpuDocument) Close() error {
	d.data = nil
	return nil
}

// pdfcpuAccumulator keeps every appended file open until Save streams them
// through api.MergeRaw.
type pdfcpuAccumulator struct {
	codec *PDFCPU
	files []*os.File
	pages int
}

func (a *pdfcpuAccumulator) Append(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	n, err := api.PageCount(f, a.codec.conf())
	if err != nil {
		f.Close()
		return fmt.Errorf("pdfcpu: reading %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return err
	}
	a.files = append(a.files, f)
	a.pages += n
	return nil
}

func (a *pdfcpuAccumulator) NumPages() int { return a.pages }

func (a *pdfcpuAccumulator) Save(w io.Writer) error {
	if len(a.files) == 0 {
		return errors.New("pdfcpu: nothing to merge")
	}
	rs := make([]io.ReadSeeker, len(a.files))
	for i, f := range a.files {
		rs[i] = f
	}
	if err := api.MergeRaw(rs, w, false, a.codec.conf()); err != nil {
		return fmt.Errorf("pdfcpu: merging: %w", err)
	}
	return nil
}

func (a *pdfcpuAccumulator) Close() error {
	var errs []error
	for _, f := range a.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.files = nil
	return errors.Join(errs...)
}
