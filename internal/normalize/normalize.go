// Package normalize maps provider result lists onto model.SourceRecord.
//
// Each provider is described by a Schema naming the keys that carry the title
// and url plus any extra keys that are copied through under a new name. The
// payload is validated against the schema as a whole: one bad item fails the
// batch and nothing is returned.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"markettrends/internal/model"
)

// NoLimit disables truncation.
const NoLimit = -1

type Mapping struct {
	From string
	To   string
}

type Schema struct {
	Provider string
	Title    string
	URL      string
	Extras   []Mapping
}

var (
	GitHub = Schema{
		Provider: "github",
		Title:    "name",
		URL:      "html_url",
		Extras:   []Mapping{{From: "stargazers_count", To: "stars"}},
	}
	DevTo = Schema{
		Provider: "devto",
		Title:    "title",
		URL:      "url",
	}
	Reddit = Schema{
		Provider: "reddit",
		Title:    "title",
		URL:      "url",
		Extras:   []Mapping{{From: "score", To: "score"}},
	}
	Finnhub = Schema{
		Provider: "finnhub",
		Title:    "headline",
		URL:      "url",
		Extras:   []Mapping{{From: "source", To: "source"}},
	}
)

// Normalize decodes payload as a JSON array of objects, keeps the first top items
// (all of them when top is NoLimit or larger than the list) and converts each to a
// SourceRecord.
func Normalize(schema Schema, payload []byte, top int) (model.RecordBatch, error) {
	items, err := decodeList(payload)
	if err != nil {
		return nil, Malformed(schema.Provider, "%v", err)
	}
	return NormalizeItems(schema, items, top)
}

// NormalizeItems is Normalize for a list the caller has already split out of an envelope.
func NormalizeItems(schema Schema, items []json.RawMessage, top int) (model.RecordBatch, error) {
	items = Truncate(items, top)

	batch := make(model.RecordBatch, 0, len(items))
	for i, item := range items {
		rec, err := schema.convert(item)
		if err != nil {
			return nil, Malformed(schema.Provider, "item %d: %v", i, err)
		}
		batch = append(batch, rec)
	}
	return batch, nil
}

// Truncate returns at most top leading elements of items. A negative top keeps everything.
func Truncate[T any](items []T, top int) []T {
	if top < 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func decodeList(payload []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("payload is not a JSON array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s Schema) convert(item json.RawMessage) (model.SourceRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return model.SourceRecord{}, fmt.Errorf("not a JSON object")
	}

	title, err := requiredString(fields, s.Title)
	if err != nil {
		return model.SourceRecord{}, err
	}
	url, err := requiredString(fields, s.URL)
	if err != nil {
		return model.SourceRecord{}, err
	}

	rec := model.SourceRecord{Title: title, URL: url}
	for _, m := range s.Extras {
		raw, ok := fields[m.From]
		if !ok {
			continue
		}
		value, err := decodeValue(raw)
		if err != nil {
			return model.SourceRecord{}, fmt.Errorf("field %q: %w", m.From, err)
		}
		rec.Extra = rec.Extra.Set(m.To, value)
	}
	return rec, nil
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing required field %q", key)
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return *s, nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Malformed reports a payload from provider that does not have the expected shape.
func Malformed(provider string, format string, args ...any) error {
	return &model.UpstreamError{
		Provider: provider,
		Err:      fmt.Errorf("%w: %s", model.ErrMalformedUpstreamPayload, fmt.Sprintf(format, args...)),
	}
}
