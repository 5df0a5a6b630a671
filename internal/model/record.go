package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	KeyTitle = "title"
	KeyURL   = "url"
)

type Field struct {
	Key   string
	Value any
}

// Record is a JSON object that remembers the order its keys were first seen in.
// Numbers are kept as json.Number so they are written back exactly as received.
type Record []Field

func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Set replaces the value of an existing key in place or appends a new one.
func (r Record) Set(key string, value any) Record {
	for i, f := range r {
		if f.Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}

func (r *Record) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	out := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key token %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("record: decode %q: %w", key, err)
		}
		out = out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("record: encode %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SourceRecord is the provider-agnostic unit produced by normalization.
type SourceRecord struct {
	Title string
	URL   string
	Extra Record
}

// Record flattens the source record into title, url and then the provider extras.
func (s SourceRecord) Record() Record {
	out := make(Record, 0, 2+len(s.Extra))
	out = append(out, Field{Key: KeyTitle, Value: s.Title}, Field{Key: KeyURL, Value: s.URL})
	for _, f := range s.Extra {
		out = out.Set(f.Key, f.Value)
	}
	return out
}

func (s SourceRecord) MarshalJSON() ([]byte, error) {
	return s.Record().MarshalJSON()
}

type RecordBatch []SourceRecord

func (b RecordBatch) Records() []Record {
	out := make([]Record, len(b))
	for i, s := range b {
		out[i] = s.Record()
	}
	return out
}

func (b RecordBatch) Titles() []string {
	out := make([]string, len(b))
	for i, s := range b {
		out[i] = s.Title
	}
	return out
}

// TitledRecord builds a SourceRecord from caller supplied JSON. Only the title is required;
// url is taken when it is a string and every other key is kept as an extra.
func TitledRecord(r Record) (SourceRecord, error) {
	raw, ok := r.Get(KeyTitle)
	if !ok {
		return SourceRecord{}, fmt.Errorf("%w: record has no %q", ErrInvalidRequest, KeyTitle)
	}
	title, ok := raw.(string)
	if !ok {
		return SourceRecord{}, fmt.Errorf("%w: %q must be a string", ErrInvalidRequest, KeyTitle)
	}

	s := SourceRecord{Title: title}
	for _, f := range r {
		switch f.Key {
		case KeyTitle:
		case KeyURL:
			if u, ok := f.Value.(string); ok {
				s.URL = u
				continue
			}
			s.Extra = append(s.Extra, f)
		default:
			s.Extra = append(s.Extra, f)
		}
	}
	return s, nil
}
