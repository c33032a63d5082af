package sidecar

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"perch/internal/faults"
)

const (
	packetHeader = "<?xpacket begin='\uFEFF' id='W5M0MpCehiHzreSzNTczkc9d'?>"
	packetFooter = "<?xpacket end='w'?>"
)

// Render serializes the document as a line-oriented XMP packet. The layout
// is fixed so repeated renders of the same document are byte-identical.
func Render(doc Document) []byte {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(packetHeader)
	line(`<x:xmpmeta xmlns:x="adobe:ns:meta/" x:xmptk="perch">`)
	line(` <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">`)
	line(`  <rdf:Description rdf:about=""`)
	line(`    xmlns:dc="http://purl.org/dc/elements/1.1/"`)
	line(`    xmlns:xmp="http://ns.adobe.com/xap/1.0/"`)
	line(`    xmlns:digiKam="http://www.digikam.org/ns/1.0/">`)

	if doc.Annotation != "" {
		line(`   <dc:description>`)
		line(`    <rdf:Alt>`)
		line(`     <rdf:li xml:lang="x-default">` + escapeXML(doc.Annotation) + `</rdf:li>`)
		line(`    </rdf:Alt>`)
		line(`   </dc:description>`)
	}

	if len(doc.Tags) > 0 {
		line(`   <dc:subject>`)
		line(`    <rdf:Bag>`)
		for _, tag := range doc.Tags {
			line(`     <rdf:li>` + escapeXML(tag) + `</rdf:li>`)
		}
		line(`    </rdf:Bag>`)
		line(`   </dc:subject>`)

		line(`   <digiKam:TagsList>`)
		line(`    <rdf:Seq>`)
		for _, tag := range doc.Tags {
			line(`     <rdf:li>` + escapeXML(tag) + `</rdf:li>`)
		}
		line(`    </rdf:Seq>`)
		line(`   </digiKam:TagsList>`)
	}

	if doc.SourceURL != "" {
		line(`   <dc:source>` + escapeXML(doc.SourceURL) + `</dc:source>`)
	}
	if doc.Identifier != "" {
		line(`   <dc:identifier>` + escapeXML(doc.Identifier) + `</dc:identifier>`)
	}
	if doc.Rating > 0 {
		line(`   <xmp:Rating>` + strconv.Itoa(doc.Rating) + `</xmp:Rating>`)
	}
	if !doc.CaptureDate.IsZero() {
		line(`   <xmp:CreateDate>` + doc.CaptureDate.Format(time.RFC3339) + `</xmp:CreateDate>`)
	}

	line(`  </rdf:Description>`)
	line(` </rdf:RDF>`)
	line(`</x:xmpmeta>`)
	b.WriteString(packetFooter)
	b.WriteByte('\n')
	return []byte(b.String())
}

func escapeXML(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

type xmpMeta struct {
	XMLName      xml.Name         `xml:"xmpmeta"`
	Descriptions []xmpDescription `xml:"RDF>Description"`
}

type xmpDescription struct {
	Subject     []string `xml:"subject>Bag>li"`
	TagsList    []string `xml:"TagsList>Seq>li"`
	Description []string `xml:"description>Alt>li"`
	Source      string   `xml:"source"`
	Identifier  string   `xml:"identifier"`
	Rating      string   `xml:"Rating"`
	CreateDate  string   `xml:"CreateDate"`
}

// Parse reads an XMP packet back into a Document. Tags prefer dc:subject and
// fall back to digiKam:TagsList when only the latter is present. Properties
// the packet does not carry come back zero-valued.
func Parse(data []byte) (Document, error) {
	var meta xmpMeta
	if err := xml.Unmarshal(data, &meta); err != nil {
		return Document{}, faults.Wrap(faults.ErrValidation, "sidecar", "parse",
			"malformed XMP packet", err)
	}

	var doc Document
	for _, desc := range meta.Descriptions {
		if len(desc.Subject) > 0 && len(doc.Tags) == 0 {
			doc.Tags = desc.Subject
		}
		if len(doc.Tags) == 0 && len(desc.TagsList) > 0 {
			doc.Tags = desc.TagsList
		}
		if len(desc.Description) > 0 && doc.Annotation == "" {
			doc.Annotation = desc.Description[0]
		}
		if desc.Source != "" && doc.SourceURL == "" {
			doc.SourceURL = desc.Source
		}
		if desc.Identifier != "" && doc.Identifier == "" {
			doc.Identifier = desc.Identifier
		}
		if desc.Rating != "" && doc.Rating == 0 {
			if rating, err := strconv.Atoi(strings.TrimSpace(desc.Rating)); err == nil {
				doc.Rating = rating
			}
		}
		if desc.CreateDate != "" && doc.CaptureDate.IsZero() {
			if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(desc.CreateDate)); err == nil {
				doc.CaptureDate = ts
			}
		}
	}
	return doc, nil
}
