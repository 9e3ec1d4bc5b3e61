package resume

import "fmt"

// EmptyDocumentError is returned when the text to extract from is empty or whitespace only.
// It is the only error Extract returns: a document without skills or education is not an error.
type EmptyDocumentError struct {
	Source string
}

func (e *EmptyDocumentError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("empty document: %s contains no text", e.Source)
	}
	return "empty document: no text to extract from"
}
