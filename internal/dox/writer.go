//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dox

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// WriteDocx - save a sequence of paragraphs as a minimal but valid .docx; the self-test builds its fixtures with this
func WriteDocx(path string, paragraphs []string) error {
	const (
		CONTENTTYPES = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
		RELATIONSHIPS = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
		DOCHEAD = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
		DOCFOOT = `</w:body></w:document>`
		ONEPARA = `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteDocx() could not create '%s': %w", path, err)
	}

	zw := zip.NewWriter(f)

	save := func(name string, data string) error {
		w, e := zw.Create(name)
		if e != nil {
			return e
		}
		_, e = w.Write([]byte(data))
		return e
	}

	var body strings.Builder
	body.WriteString(DOCHEAD)
	for _, p := range paragraphs {
		var esc bytes.Buffer
		_ = xml.EscapeText(&esc, []byte(p))
		body.WriteString(fmt.Sprintf(ONEPARA, esc.String()))
	}
	body.WriteString(DOCFOOT)

	if err = save("[Content_Types].xml", CONTENTTYPES); err != nil {
		return fmt.Errorf("WriteDocx() could not fill '%s': %w", path, err)
	}

	if err = save("_rels/.rels", RELATIONSHIPS); err != nil {
		return fmt.Errorf("WriteDocx() could not fill '%s': %w", path, err)
	}

	if err = save("word/document.xml", body.String()); err != nil {
		return fmt.Errorf("WriteDocx() could not fill '%s': %w", path, err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("WriteDocx() could not finish '%s': %w", path, err)
	}

	return f.Close()
}
