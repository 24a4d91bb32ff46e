//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dox

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

//
// WORDPROCESSINGML
//

// the smallest useful slice of the schema: body-level paragraphs, their runs, and any hyperlink runs;
// tables, styles, numbering, and the docProps metadata are irrelevant to topic modeling and never parsed

type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs       []runXML       `xml:"r"`
	Hyperlinks []hyperlinkXML `xml:"hyperlink"`
}

type hyperlinkXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text   []textXML  `xml:"t"`
	Tabs   []tabXML   `xml:"tab"`
	Breaks []breakXML `xml:"br"`
}

type textXML struct {
	Value string `xml:",chardata"`
}

type tabXML struct{}

type breakXML struct{}

// ReadParagraphs - pull the ordered paragraph texts out of a .docx file
func ReadParagraphs(path string) ([]string, error) {
	const (
		ERR1 = "ReadParagraphs() could not open '%s'"
		ERR2 = "'%s' does not contain 'word/document.xml'"
		ERR3 = "ReadParagraphs() could not read '%s'"
		ERR4 = "ReadParagraphs() could not parse '%s'"
	)

	// a .docx is a zip; a missing file surfaces here as fs.ErrNotExist, a non-zip as zip.ErrFormat
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf(ERR1+": %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}

	if doc == nil {
		return nil, fmt.Errorf(ERR2, path)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf(ERR3+": %w", path, err)
	}

	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return nil, fmt.Errorf(ERR3+": %w", path, err)
	}

	parsed := &documentXML{}
	if err = xml.Unmarshal(data, parsed); err != nil {
		return nil, fmt.Errorf(ERR4+": %w", path, err)
	}

	if parsed.Body == nil {
		return []string{}, nil
	}

	pp := make([]string, 0, len(parsed.Body.Paragraphs))
	for _, p := range parsed.Body.Paragraphs {
		pp = append(pp, paragraphtext(p))
	}

	return pp, nil
}

// paragraphtext - join a paragraph's runs into one string; split runs concatenate seamlessly
func paragraphtext(p paragraphXML) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		runtext(&sb, r)
	}

	// encoding/xml collects hyperlink runs into their own slice; their text still belongs to the paragraph
	for _, h := range p.Hyperlinks {
		for _, r := range h.Runs {
			runtext(&sb, r)
		}
	}

	return sb.String()
}

// runtext - the text of one run; w:tab and w:br count as whitespace
func runtext(sb *strings.Builder, r runXML) {
	for _, t := range r.Text {
		sb.WriteString(t.Value)
	}
	for range r.Tabs {
		sb.WriteString("\t")
	}
	for range r.Breaks {
		sb.WriteString("\n")
	}
}
