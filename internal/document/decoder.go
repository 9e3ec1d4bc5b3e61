// Package document turns resume files into plain text.
package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"go.uber.org/zap"
)

const (
	FormatPDF      = ".pdf"
	FormatDOCX     = ".docx"
	FormatText     = ".txt"
	FormatMarkdown = ".md"
)

const pdfTimeout = 30 * time.Second

// Decoder reads supported files and returns their text.
type Decoder struct {
	pdf    einoParser.Parser
	logger *zap.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithPDFParser replaces the default PDF parser.
func WithPDFParser(p einoParser.Parser) Option {
	return func(d *Decoder) {
		d.pdf = p
	}
}

// New creates a decoder. The PDF parser returns the whole document as one text.
func New(ctx context.Context, options ...Option) (*Decoder, error) {
	d := &Decoder{logger: zap.NewNop()}
	for _, option := range options {
		option(d)
	}

	if d.pdf == nil {
		p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
		if err != nil {
			return nil, fmt.Errorf("create pdf parser: %w", err)
		}
		d.pdf = p
	}

	return d, nil
}

// Supported lists the extensions Decode accepts.
func Supported() []string {
	return []string{FormatPDF, FormatDOCX, FormatText, FormatMarkdown}
}

// Decode returns the normalized text of the file at path.
func (d *Decoder) Decode(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)

	switch ext {
	case FormatPDF:
		text, err = d.decodePDF(ctx, path)
	case FormatDOCX:
		text, err = decodeDOCX(path)
	case FormatText, FormatMarkdown:
		text, err = decodeText(path)
	default:
		return "", &UnsupportedFormatError{Path: path, Extension: ext}
	}
	if err != nil {
		return "", &DecodeError{Path: path, Cause: err}
	}

	text = normalize(text)
	d.logger.Debug("document decoded",
		zap.String("path", path),
		zap.String("format", ext),
		zap.Int("chars", len(text)),
	)

	return text, nil
}

func (d *Decoder) decodePDF(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	docs, err := d.pdf.Parse(ctx, file, einoParser.WithURI(path))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			parts = append(parts, doc.Content)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func decodeText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// normalize converts line endings to LF and trims trailing whitespace of every line
// and of the document.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
