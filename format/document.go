package format

import "github.com/dhamidi/src2abs/abstraction"

// document is the structured form shared by the JSON and YAML encoders.
type document struct {
	Text    string          `json:"text" yaml:"text"`
	Mapping []documentEntry `json:"mapping" yaml:"mapping"`
	Units   []documentUnit  `json:"units,omitempty" yaml:"units,omitempty"`
}

type documentEntry struct {
	Original    string `json:"original" yaml:"original"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Category    string `json:"category" yaml:"category"`
}

type documentUnit struct {
	Line       int    `json:"line" yaml:"line"`
	Column     int    `json:"column" yaml:"column"`
	Original   string `json:"original" yaml:"original"`
	Abstracted string `json:"abstracted" yaml:"abstracted"`
}

func buildDocument(res *abstraction.Result, units bool) document {
	if res == nil {
		return document{Mapping: []documentEntry{}}
	}
	doc := document{
		Text:    res.Text,
		Mapping: []documentEntry{},
	}
	for _, e := range res.Mapping.Entries() {
		doc.Mapping = append(doc.Mapping, documentEntry{
			Original:    e.Original,
			Placeholder: e.Placeholder,
			Category:    e.Category.String(),
		})
	}
	if !units {
		return doc
	}
	for _, u := range res.Units {
		if u.Original == u.Abstracted {
			continue
		}
		doc.Units = append(doc.Units, documentUnit{
			Line:       u.Span.Start.Line,
			Column:     u.Span.Start.Column,
			Original:   u.Original,
			Abstracted: u.Abstracted,
		})
	}
	return doc
}
