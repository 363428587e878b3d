package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds schemas by name. Schemas are package-level values in
// their callers, so the set is small and never evicted.
var compiled = struct {
	sync.Mutex
	m map[string]*jsonschema.Schema
}{m: make(map[string]*jsonschema.Schema)}

// validateStructured extracts the JSON value from model text and checks it
// against s. Models sometimes wrap JSON in a markdown fence or a sentence
// of preamble; both are stripped.
func validateStructured(s *Schema, text string) (json.RawMessage, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, &Error{Kind: KindInvalidOutput, Output: text, Err: errEmptyOutput}
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, &Error{Kind: KindInvalidOutput, Output: text, Err: fmt.Errorf("parse json: %w", err)}
	}

	sch, err := compileSchema(s)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, &Error{Kind: KindInvalidOutput, Output: text, Err: err}
	}
	return json.RawMessage(raw), nil
}

func extractJSON(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		if nl := strings.IndexByte(t, '\n'); nl >= 0 {
			t = t[nl+1:]
		}
		t = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "```"))
	}
	if t == "" || t[0] == '{' || t[0] == '[' {
		return t
	}
	start, end := strings.IndexByte(t, '{'), strings.LastIndexByte(t, '}')
	if start < 0 || end < start {
		return t
	}
	return t[start : end+1]
}

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	compiled.Lock()
	defer compiled.Unlock()
	if sch, ok := compiled.m[s.Name]; ok {
		return sch, nil
	}

	// The compiler wants the document in its own number representation,
	// so the Go map goes through JSON once.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, err
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.m[s.Name] = sch
	return sch, nil
}
