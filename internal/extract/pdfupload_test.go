package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPDFUploadStrategyEmptyUpload(t *testing.T) {
	s := NewPDFUploadStrategy(disabledEngine(), "px", 200)

	_, err := s.Extract(Context{Mode: ModePDFUpload})
	require.ErrorIs(t, err, ErrInput)
}

func TestPDFUploadStrategyInvalidPDF(t *testing.T) {
	s := NewPDFUploadStrategy(disabledEngine(), "px", 200)

	_, err := s.Extract(Context{Upload: []byte("this is not a pdf"), Filename: "x.pdf"})
	require.ErrorIs(t, err, ErrProcessing)
}
