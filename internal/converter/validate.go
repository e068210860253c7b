package converter

import (
	"context"

	"github.com/ledongthuc/pdf"
)

// pageCount opens a produced PDF and returns its page count
func pageCount(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return reader.NumPage(), nil
}

// logPageCount records the page count of a freshly produced PDF. Inspection
// failures are not conversion failures: the artifact exists and the viewer
// may still render it.
func (p *Pipeline) logPageCount(ctx context.Context, path string) {
	pages, err := pageCount(path)
	if err != nil {
		p.logger.DebugContext(ctx, "could not inspect output pdf",
			"path", path,
			"error", err,
		)
		return
	}
	p.logger.DebugContext(ctx, "conversion produced pdf",
		"path", path,
		"pages", pages,
	)
}

// warnOnPageMismatch flags a raster pass that produced a different number of
// images than the PDF has pages
func (p *Pipeline) warnOnPageMismatch(ctx context.Context, pdfPath string, imageCount int) {
	pages, err := pageCount(pdfPath)
	if err != nil {
		return
	}
	if pages != imageCount {
		p.logger.WarnContext(ctx, "image count does not match pdf page count",
			"pdf", pdfPath,
			"pages", pages,
			"images", imageCount,
		)
	}
}
