package codec

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	rpdf "rsc.io/pdf"
)

// A4 in points, used when a page carries no readable MediaBox.
const (
	a4Width  = 595.28
	a4Height = 841.89
)

// Gofpdi imports source pages as form XObjects into a fresh gofpdf document.
// The page appearance is kept but interactive content (links, forms) is not.
type Gofpdi struct{}

func NewGofpdi() *Gofpdi { return &Gofpdi{} }

func (c *Gofpdi) Name() string { return EngineGofpdi }

func (c *Gofpdi) Open(path string) (Document, error) {
	n, err := c.PageCount(path)
	if err != nil {
		return nil, err
	}
	return &gofpdiDocument{path: path, pages: n}, nil
}

func (c *Gofpdi) PageCount(path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	defer recoverInto(&err, path)
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, fmt.Errorf("gofpdi: reading %s: %w", path, err)
	}
	return doc.NumPage(), nil
}

func (c *Gofpdi) NewAccumulator() Accumulator {
	pdf, imp := newImportTarget()
	return &gofpdiAccumulator{codec: c, pdf: pdf, imp: imp}
}

// recoverInto turns a panic from the parsing libraries into an error.
func recoverInto(err *error, path string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("gofpdi: %s: %v", path, r)
	}
}

func newImportTarget() (*gofpdf.Fpdf, *gofpdi.Importer) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return pdf, gofpdi.NewImporter()
}

// importPages appends pages start..end of sourceFile to pdf.
func importPages(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, sourceFile string, start, end int) (err error) {
	defer recoverInto(&err, sourceFile)
	for i := start; i <= end; i++ {
		tplID := imp.ImportPage(pdf, sourceFile, i, "/MediaBox")
		w, h := a4Width, a4Height
		if dims, ok := imp.GetPageSizes()[i]; ok {
			if mb, ok := dims["/MediaBox"]; ok && mb["w"] > 0 && mb["h"] > 0 {
				w, h = mb["w"], mb["h"]
			}
		}
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)
	}
	return pdf.Error()
}

type gofpdiDocument struct {
	path  string
	pages int
}

func (d *gofpdiDocument) NumPages() int { return d.pages }

func (d *gofpdiDocument) WritePages(w io.Writer, start, end int) error {
	if err := checkRange(d.pages, start, end); err != nil {
		return err
	}
	pdf, imp := newImportTarget()
	if err := importPages(pdf, imp, d.path, start, end); err != nil {
		return err
	}
	return pdf.Output(w)
}

func (d *gofpdiDocument) Close() error { return nil }

type gofpdiAccumulator struct {
	codec *Gofpdi
	pdf   *gofpdf.Fpdf
	imp   *gofpdi.Importer
	pages int
}

func (a *gofpdiAccumulator) Append(path string) error {
	if a.pdf == nil {
		return errors.New("gofpdi: accumulator is closed")
	}
	n, err := a.codec.PageCount(path)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := importPages(a.pdf, a.imp, path, 1, n); err != nil {
		return err
	}
	a.pages += n
	return nil
}

func (a *gofpdiAccumulator) NumPages() int { return a.pages }

func (a *gofpdiAccumulator) Save(w io.Writer) error {
	if a.pdf == nil {
		return errors.New("gofpdi: accumulator is closed")
	}
	if a.pages == 0 {
		return errors.New("gofpdi: nothing to merge")
	}
	return a.pdf.Output(w)
}

func (a *gofpdiAccumulator) Close() error {
	a.pdf, a.imp = nil, nil
	return nil
}
