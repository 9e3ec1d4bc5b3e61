package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// decodeDOCX reads the text runs of the main document part. Paragraphs and line
// breaks become newlines, tabs stay tabs.
func decodeDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != docxBody {
			continue
		}

		body, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", docxBody, err)
		}
		defer body.Close()

		return docxText(body)
	}

	return "", fmt.Errorf("%s not found in archive", docxBody)
}

func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		out    strings.Builder
		inText bool
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", docxBody, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return out.String(), nil
}
