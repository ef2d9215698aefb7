// Package docx extracts prose from Word manuscripts.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// MIMEType is the Office Open XML word processing type.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Normaliser handles DOCX manuscripts.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the body text of a DOCX file. Paragraphs are
// separated by a blank line; tracked deletions are dropped.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawManuscript) (*domain.Manuscript, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a docx archive", domain.ErrInvalidInput)
	}

	body, err := readPart(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: docx has no word/document.xml", domain.ErrInvalidInput)
	}

	content, err := extractText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing document.xml: %w", domain.ErrInvalidInput, err)
	}

	return &domain.Manuscript{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title(reader, raw.URI),
		Format:    "docx",
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// readPart returns the bytes of a named archive member, or nil if absent.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s", domain.ErrInvalidInput, name)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s", domain.ErrInvalidInput, name)
		}
		return data, nil
	}
	return nil, nil
}

// extractText walks the WordprocessingML token stream so that text,
// tabs and line breaks keep their order within a paragraph.
func extractText(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var paragraphs []string
	var para strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte(' ')
			case "br", "cr":
				para.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(para.String()); s != "" {
					paragraphs = append(paragraphs, s)
				}
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n\n"), nil
}

// coreXML is the part of docProps/core.xml carrying the title.
type coreXML struct {
	Title string `xml:"title"`
}

// title reads the document title, falling back to the file name.
func title(reader *zip.Reader, uri string) string {
	data, err := readPart(reader, "docProps/core.xml")
	if err == nil && data != nil {
		var core coreXML
		if err := xml.Unmarshal(data, &core); err == nil && strings.TrimSpace(core.Title) != "" {
			return strings.TrimSpace(core.Title)
		}
	}
	return normalisers.TitleFromURI(uri)
}
