package document

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePDF struct {
	docs []*schema.Document
	err  error
	uri  string
	body string
}

func (f *fakePDF) Parse(_ context.Context, reader io.Reader, opts ...einoParser.Option) ([]*schema.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.body = string(data)
	f.uri = einoParser.GetCommonOptions(&einoParser.Options{}, opts...).URI
	return f.docs, f.err
}

func newDecoder(t *testing.T, pdf einoParser.Parser, options ...Option) *Decoder {
	t.Helper()

	d, err := New(context.Background(), append([]Option{WithPDFParser(pdf)}, options...)...)
	require.NoError(t, err)
	return d
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeDOCX(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "resume.docx")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	archive := zip.NewWriter(file)
	part, err := archive.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	part, err = archive.Create(docxBody)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	return path
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "resume.TXT", "Jane Doe  \r\nSkills: Python, SQL\t\r\n\r\n")
	text, err := newDecoder(t, &fakePDF{}).Decode(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Python, SQL", text)
}

func TestDecodeMarkdown(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "resume.md", "# Jane Doe\n")
	text, err := newDecoder(t, &fakePDF{}).Decode(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe", text)
}

func TestDecodeDOCX(t *testing.T) {
	t.Parallel()

	body := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills:</w:t><w:br/><w:t>Python</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, err := newDecoder(t, &fakePDF{}).Decode(context.Background(), writeDOCX(t, body))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills:\nPython\tSQL", text)
}

func TestDecodeDOCXWithoutBody(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.docx")
	file, err := os.Create(path)
	require.NoError(t, err)
	archive := zip.NewWriter(file)
	require.NoError(t, archive.Close())
	require.NoError(t, file.Close())

	_, err = newDecoder(t, &fakePDF{}).Decode(context.Background(), path)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, path, decodeErr.Path)
}

func TestDecodePDF(t *testing.T) {
	t.Parallel()

	fake := &fakePDF{docs: []*schema.Document{{Content: "Jane Doe\r\nSkills: Go "}}}
	path := writeFile(t, "resume.pdf", "%PDF-1.4 fake")

	text, err := newDecoder(t, fake).Decode(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go", text)
	assert.Equal(t, path, fake.uri)
	assert.Equal(t, "%PDF-1.4 fake", fake.body)
}

func TestDecodePDFFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("broken xref table")
	path := writeFile(t, "resume.pdf", "garbage")

	_, err := newDecoder(t, &fakePDF{err: cause}).Decode(context.Background(), path)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, cause)
}

func TestDecodeUnsupported(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"resume.doc", "resume"} {
		_, err := newDecoder(t, &fakePDF{}).Decode(context.Background(), name)

		var unsupported *UnsupportedFormatError
		require.ErrorAs(t, err, &unsupported, name)
		assert.Equal(t, name, unsupported.Path)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	t.Parallel()

	_, err := newDecoder(t, &fakePDF{}).Decode(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	path := writeFile(t, "resume.txt", "Jane Doe")

	_, err := newDecoder(t, &fakePDF{}, WithLogger(zap.New(core))).Decode(context.Background(), path)
	require.NoError(t, err)

	entries := logs.FilterMessage("document decoded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, ".txt", entries[0].ContextMap()["format"])
	assert.EqualValues(t, 8, entries[0].ContextMap()["chars"])
}
