package document

import (
	"strings"
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextExtractorSupports(t *testing.T) {
	ex := PlainTextExtractor{}
	assert.True(t, ex.Supports("notes.txt"))
	assert.True(t, ex.Supports("README.md"))
	assert.True(t, ex.Supports("GUIDE.MARKDOWN"))
	assert.False(t, ex.Supports("slides.pdf"))
	assert.False(t, ex.Supports("archive.zip"))
}

func TestPlainTextExtractorRejectsBinary(t *testing.T) {
	ex := PlainTextExtractor{}
	_, err := ex.Extract("notes.txt", []byte{0xff, 0xfe, 0x00})
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestExtractAllCombinesInUploadOrder(t *testing.T) {
	files := []File{
		{Name: "chapter1.txt", Data: []byte("The cell is the basic unit of life.")},
		{Name: "chapter2.md", Data: []byte("Mitochondria produce ATP.\n")},
	}
	combined, err := ExtractAll([]Extractor{PlainTextExtractor{}}, files)
	require.NoError(t, err)

	assert.Contains(t, combined, "=== Source: chapter1.txt ===")
	assert.Contains(t, combined, "=== Source: chapter2.md ===")
	assert.Contains(t, combined, "---")
	assert.Less(t,
		strings.Index(combined, "chapter1.txt"),
		strings.Index(combined, "chapter2.md"),
		"sources keep their upload order",
	)
}

func TestExtractAllRejectsUnsupportedFile(t *testing.T) {
	files := []File{
		{Name: "notes.txt", Data: []byte("fine")},
		{Name: "slides.pptx", Data: []byte("nope")},
	}
	_, err := ExtractAll([]Extractor{PlainTextExtractor{}}, files)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.Contains(t, domainErr.Message, "slides.pptx")
}
