// Package report renders an analysis run into a docx document, used by the
// web download endpoint and the drop-folder mode.
package report

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/accent-lens/internal/processor"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// Write renders the run into a docx file at outputPath
func Write(run *processor.Run, outputPath string) error {
	if run == nil {
		return fmt.Errorf("nil run")
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addHeading(doc, "Audio Analysis Report", 16)
	doc.AddParagraph("")

	addField(doc, "Source", run.SourceName)
	addField(doc, "Status", string(run.Status))
	addField(doc, "Predicted Accent", run.Accent)
	addField(doc, "Confidence", run.Confidence)

	doc.AddParagraph("")
	addHeading(doc, "Summary", 14)
	addBody(doc, run.Summary)

	if run.Error != "" {
		doc.AddParagraph("")
		addHeading(doc, "Errors", 14)
		addBody(doc, run.Error)
	}

	if run.Raw != "" {
		doc.AddParagraph("")
		addHeading(doc, "Raw Model Output", 14)
		for _, line := range strings.Split(run.Raw, "\n") {
			addBody(doc, line)
		}
	}

	return doc.SaveTo(outputPath)
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addField(doc *docx.RootDoc, label, value string) {
	if value == "" {
		value = "-"
	}
	p := doc.AddParagraph("")
	p.AddText(label+": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
	p.AddText(value).Font(fontName).Size(fontSize).Color("000000")
}

func addBody(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}
