package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/tcardoso/minutegen/internal/minutes"
	"github.com/tcardoso/minutegen/internal/render/assets"
)

// DOCX lays out a finalized draft as a styled WordprocessingML package:
// a running header with title, logo and brand rule, a running footer whose
// "Page X of Y" fields the consuming viewer resolves, named paragraph styles,
// a native bulleted-list numbering definition, and keep-with-next on each
// task line so it is never separated from its metadata line. Output is
// byte-identical for the same draft and generatedAt.
func DOCX(d minutes.Draft, generatedAt time.Time) ([]byte, error) {
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxPackageRels)},
		{"word/document.xml", docxDocument(d, generatedAt)},
		{"word/styles.xml", []byte(docxStyles)},
		{"word/numbering.xml", []byte(docxNumbering)},
		{"word/header1.xml", []byte(docxHeader)},
		{"word/footer1.xml", []byte(docxFooter)},
		{"word/_rels/document.xml.rels", []byte(docxDocumentRels)},
		{"word/_rels/header1.xml.rels", []byte(docxHeaderRels)},
		{"word/media/logo.png", assets.LogoPNG},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		// Zero Modified keeps the archive byte-identical across renders.
		w, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}

// docxDocument assembles word/document.xml: the date line, the four sections
// in fixed order, and the section properties binding header, footer, A4 page
// size, and margins.
func docxDocument(d minutes.Draft, generatedAt time.Time) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	// Generation date, small and muted.
	b.WriteString(`<w:p><w:pPr><w:spacing w:before="100" w:after="300"/></w:pPr>`)
	writeRun(&b, generatedLine(generatedAt), `<w:color w:val="666666"/><w:sz w:val="20"/>`)
	b.WriteString(`</w:p>`)

	writeSectionHeading(&b, HeadingObjectives)
	writeBodyParagraph(&b, objectivesText(d))

	writeSectionHeading(&b, HeadingParticipants)
	writeBodyParagraph(&b, participantsLine(d))

	writeSectionHeading(&b, HeadingDiscussion)
	if len(d.DiscussionPoints) == 0 {
		writeBodyParagraph(&b, PlaceholderDiscussion)
	} else {
		for _, point := range d.DiscussionPoints {
			writeBulletParagraph(&b, point, false)
		}
	}

	writeSectionHeading(&b, HeadingNextSteps)
	if len(d.NextSteps) == 0 {
		writeBodyParagraph(&b, PlaceholderNextSteps)
	} else {
		for _, step := range d.NextSteps {
			writeBulletParagraph(&b, step.Task, true)
			b.WriteString(`<w:p><w:pPr><w:pStyle w:val="MetaText"/><w:keepLines/></w:pPr>`)
			writeRun(&b, metaLine(step), ``)
			b.WriteString(`</w:p>`)
		}
	}

	b.WriteString(`<w:sectPr>` +
		`<w:headerReference w:type="default" r:id="rId3"/>` +
		`<w:footerReference w:type="default" r:id="rId4"/>` +
		`<w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="2600" w:right="1200" w:bottom="1200" w:left="1200" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

func writeSectionHeading(b *strings.Builder, title string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="SectionHeading"/></w:pPr>`)
	writeRun(b, title, ``)
	b.WriteString(`</w:p>`)
}

func writeBodyParagraph(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="BodyText"/></w:pPr>`)
	writeRun(b, text, ``)
	b.WriteString(`</w:p>`)
}

// writeBulletParagraph emits a list paragraph bound to the bullet numbering
// definition. keepNext marks the paragraph to stay with its successor across
// page breaks.
func writeBulletParagraph(b *strings.Builder, text string, keepNext bool) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="BodyText"/>`)
	if keepNext {
		b.WriteString(`<w:keepNext/><w:keepLines/>`)
	}
	b.WriteString(`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
	writeRun(b, text, ``)
	b.WriteString(`</w:p>`)
}

func writeRun(b *strings.Builder, text, runProps string) {
	b.WriteString(`<w:r>`)
	if runProps != "" {
		b.WriteString(`<w:rPr>` + runProps + `</w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString(`</w:t></w:r>`)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Default Extension="png" ContentType="image/png"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>` +
	`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>` +
	`</Types>`

const docxPackageRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>` +
	`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>` +
	`</Relationships>`

const docxHeaderRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/logo.png"/>` +
	`</Relationships>`

// Named paragraph styles: Arial 11pt body default, bold 12pt section
// headings, muted indented metadata lines. Sizes are half-points.
const docxStyles = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial"/><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="SectionHeading"><w:name w:val="Section Heading"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:before="300" w:after="120"/></w:pPr><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="BodyText"><w:name w:val="Body Text"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:after="120"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="MetaText"><w:name w:val="Meta Text"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:after="200"/><w:ind w:left="360"/></w:pPr><w:rPr><w:color w:val="444444"/><w:sz w:val="20"/></w:rPr></w:style>` +
	`</w:styles>`

// One bullet numbering definition; list paragraphs reference numId 1.
const docxNumbering = xml.Header + `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0">` +
	`<w:numFmt w:val="bullet"/><w:lvlText w:val="&#8226;"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr>` +
	`</w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`

// Running header: brand-colored title, right-tabbed inline logo, and a rule
// drawn as a bottom border on an empty paragraph. Image extents are EMUs
// (px × 9525 for the 96×40 logo).
const docxHeader = xml.Header + `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
	`<w:p><w:pPr><w:tabs><w:tab w:val="right" w:pos="9506"/></w:tabs></w:pPr>` +
	`<w:r><w:rPr><w:b/><w:color w:val="` + brandColorHex + `"/><w:sz w:val="40"/></w:rPr><w:t>MEETING MINUTES</w:t></w:r>` +
	`<w:r><w:tab/></w:r>` +
	`<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">` +
	`<wp:extent cx="914400" cy="381000"/><wp:docPr id="1" name="Logo"/>` +
	`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
	`<pic:pic><pic:nvPicPr><pic:cNvPr id="1" name="Logo"/><pic:cNvPicPr/></pic:nvPicPr>` +
	`<pic:blipFill><a:blip r:embed="rId1"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>` +
	`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="914400" cy="381000"/></a:xfrm>` +
	`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>` +
	`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>` +
	`<w:p><w:pPr><w:spacing w:before="60" w:after="0"/>` +
	`<w:pBdr><w:bottom w:val="single" w:sz="12" w:space="1" w:color="` + brandColorHex + `"/></w:pBdr>` +
	`</w:pPr></w:p>` +
	`</w:hdr>`

// Running footer: centered "Page X of Y" via PAGE and NUMPAGES fields the
// viewer resolves at layout time.
const docxFooter = xml.Header + `<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:p><w:pPr><w:jc w:val="center"/><w:rPr><w:color w:val="888888"/><w:sz w:val="18"/></w:rPr></w:pPr>` +
	`<w:r><w:rPr><w:color w:val="888888"/><w:sz w:val="18"/></w:rPr><w:t xml:space="preserve">Page </w:t></w:r>` +
	`<w:fldSimple w:instr=" PAGE "><w:r><w:rPr><w:color w:val="888888"/><w:sz w:val="18"/></w:rPr><w:t>1</w:t></w:r></w:fldSimple>` +
	`<w:r><w:rPr><w:color w:val="888888"/><w:sz w:val="18"/></w:rPr><w:t xml:space="preserve"> of </w:t></w:r>` +
	`<w:fldSimple w:instr=" NUMPAGES "><w:r><w:rPr><w:color w:val="888888"/><w:sz w:val="18"/></w:rPr><w:t>1</w:t></w:r></w:fldSimple>` +
	`</w:p></w:ftr>`
