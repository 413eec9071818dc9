package importers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/crazythursday/copywriting/internal/entities"
)

// ErrInvalidInput marks pipeline-fatal input problems: the source could not be
// read, is not JSON, or is not a JSON array. No batch is attempted.
var ErrInvalidInput = errors.New("invalid import input")

// ErrMalformedRecord marks a single element that is neither a string nor an
// object with a non-empty string content.
var ErrMalformedRecord = errors.New("malformed record")

// RecordKind tells which input shape a record was decoded from.
type RecordKind int

const (
	KindMalformed RecordKind = iota
	KindText                 // bare JSON string
	KindObject               // {"content": "...", "status": "..."}
)

func (k RecordKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindObject:
		return "object"
	default:
		return "malformed"
	}
}

// ImportRecord is one decoded element of the input array. Malformed elements
// are kept in place (with Err set) so that batch boundaries and indices stay
// aligned with the source file.
type ImportRecord struct {
	Kind    RecordKind
	Content string
	Status  entities.CopywritingStatus
	Err     error
}

// TextRecord builds a record for a bare string element.
func TextRecord(content string) ImportRecord {
	return ImportRecord{Kind: KindText, Content: content}
}

// ObjectRecord builds a record for an object element.
func ObjectRecord(content string, status entities.CopywritingStatus) ImportRecord {
	return ImportRecord{Kind: KindObject, Content: content, Status: status}
}

// Malformed reports whether the element failed to decode.
func (r ImportRecord) Malformed() bool {
	return r.Kind == KindMalformed
}

// Normalize returns the insert payload, defaulting the status to pending.
func (r ImportRecord) Normalize() (entities.CopywritingInput, error) {
	if r.Malformed() {
		if r.Err != nil {
			return entities.CopywritingInput{}, r.Err
		}
		return entities.CopywritingInput{}, ErrMalformedRecord
	}
	if strings.TrimSpace(r.Content) == "" {
		return entities.CopywritingInput{}, fmt.Errorf("%w: empty content", ErrMalformedRecord)
	}

	status := r.Status
	if status == "" {
		status = entities.StatusPending
	}
	if !status.Valid() {
		return entities.CopywritingInput{}, fmt.Errorf("%w: unknown status %q", ErrMalformedRecord, status)
	}

	return entities.CopywritingInput{Content: r.Content, Status: status}, nil
}

// objectShape is the accepted object form. Status is a pointer so that an
// explicit null and a missing key both fall back to the default.
type objectShape struct {
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// DecodeRecords parses a JSON array of strings or objects. Only a top-level
// problem (not JSON, not an array) returns an error; bad elements come back
// as malformed records.
func DecodeRecords(data []byte) ([]ImportRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: input is empty", ErrInvalidInput)
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: input is not valid JSON", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: input must be a JSON array", ErrInvalidInput)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records := make([]ImportRecord, len(elements))
	for i, raw := range elements {
		records[i] = decodeElement(raw)
	}
	return records, nil
}

func decodeElement(raw json.RawMessage) ImportRecord {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return malformed("empty element")
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return malformed(err.Error())
		}
		if strings.TrimSpace(text) == "" {
			return malformed("empty content")
		}
		return TextRecord(text)

	case '{':
		var obj objectShape
		if err := json.Unmarshal(raw, &obj); err != nil {
			return malformed(err.Error())
		}
		if obj.Content == nil {
			return malformed("object has no string field \"content\"")
		}
		if strings.TrimSpace(*obj.Content) == "" {
			return malformed("empty content")
		}
		status := entities.StatusPending
		if obj.Status != nil {
			parsed, err := entities.ParseStatus(*obj.Status)
			if err != nil {
				return malformed(err.Error())
			}
			status = parsed
		}
		return ObjectRecord(*obj.Content, status)
	}

	return malformed(fmt.Sprintf("unsupported element %s", truncate(string(raw), 40)))
}

func malformed(reason string) ImportRecord {
	return ImportRecord{Kind: KindMalformed, Err: fmt.Errorf("%w: %s", ErrMalformedRecord, reason)}
}

// FirstMalformed returns the 0-based index of the first malformed record, or -1.
func FirstMalformed(records []ImportRecord) int {
	for i, r := range records {
		if r.Malformed() {
			return i
		}
	}
	return -1
}

// truncate shortens s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
