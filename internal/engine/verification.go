package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// VerificationEntry pairs a claim title with its verification result.
type VerificationEntry struct {
	Title  string
	Result VerificationResult
}

// VerificationResults is the verification_results object of a payload.
// It keeps the entries in document order, which the claim ids depend on.
type VerificationResults []VerificationEntry

// Get returns the result recorded for title.
func (v VerificationResults) Get(title string) (VerificationResult, bool) {
	for _, e := range v {
		if e.Title == title {
			return e.Result, true
		}
	}
	return VerificationResult{}, false
}

// UnmarshalJSON decodes a JSON object while preserving key order.
// A repeated key replaces the earlier value in place.
func (v *VerificationResults) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("verification_results must be a JSON object")
	}

	entries := VerificationResults{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return keyErr
		}
		title, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}

		var result VerificationResult
		if decErr := dec.Decode(&result); decErr != nil {
			return fmt.Errorf("claim %q: %w", title, decErr)
		}

		if i, dup := index[title]; dup {
			entries[i].Result = result
			continue
		}
		index[title] = len(entries)
		entries = append(entries, VerificationEntry{Title: title, Result: result})
	}

	if _, err = dec.Token(); err != nil {
		return err
	}
	*v = entries
	return nil
}

// MarshalJSON encodes the entries as a JSON object in their stored order.
func (v VerificationResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Title)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
