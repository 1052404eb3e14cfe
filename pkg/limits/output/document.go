package output

import "github.com/jamesainslie/limits/pkg/limits/types"

// document is the structure shared by the json and yaml formatters.
type document struct {
	Host        string        `json:"host,omitempty" yaml:"host,omitempty"`
	CollectedAt string        `json:"collected_at,omitempty" yaml:"collected_at,omitempty"`
	Sections    []types.Group `json:"sections" yaml:"sections"`
}

// timeLayout is the timestamp layout used in structured output.
const timeLayout = "2006-01-02T15:04:05Z07:00"

func buildDocument(s *Snapshot) document {
	doc := document{
		Host:     s.Hostname,
		Sections: types.Grouped(s.Records),
	}
	if doc.Sections == nil {
		doc.Sections = []types.Group{}
	}
	if !s.CollectedAt.IsZero() {
		doc.CollectedAt = s.CollectedAt.Format(timeLayout)
	}
	return doc
}
