package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

// Paragraphs shorter than this are extraction noise (page numbers, stray
// header fragments) and are discarded.
const minParagraphLength = 10

var paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)

// PDFService extracts page-tagged paragraphs from PDF documents. It is the
// extraction collaborator in front of the chunk assembler: page numbers are
// 1-based and monotonically non-decreasing in emission order.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Extract returns (page, paragraph) pairs for every page of the document.
// Unreadable or corrupt input fails with *types.ExtractionError; pages that
// fail individually are skipped with a warning rather than aborting the
// document.
func (s *PDFService) Extract(filePath string) ([]types.PageParagraph, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, &types.ExtractionError{Path: filePath, Err: err}
	}
	defer f.Close()

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return nil, &types.ExtractionError{Path: filePath, Err: fmt.Errorf("document has no pages")}
	}

	var paragraphs []types.PageParagraph
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warnf("failed to extract text from page %d of %s: %v", pageNum, filePath, err)
			continue
		}
		for _, para := range splitParagraphs(text) {
			paragraphs = append(paragraphs, types.PageParagraph{
				Page: pageNum,
				Text: para,
			})
		}
	}

	if len(paragraphs) == 0 {
		return nil, &types.ExtractionError{
			Path: filePath,
			Err:  fmt.Errorf("no text extracted; document may be scanned or image-based"),
		}
	}
	return paragraphs, nil
}

// splitParagraphs splits page text on blank-line breaks, falling back to
// the whole page as a single paragraph when no breaks survive extraction.
// Fragments at or under minParagraphLength are dropped.
func splitParagraphs(pageText string) []string {
	parts := paragraphBreakRe.Split(pageText, -1)

	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) > minParagraphLength {
			paragraphs = append(paragraphs, part)
		}
	}

	if len(paragraphs) == 0 {
		if whole := strings.TrimSpace(pageText); len(whole) > minParagraphLength {
			paragraphs = append(paragraphs, whole)
		}
	}
	return paragraphs
}
