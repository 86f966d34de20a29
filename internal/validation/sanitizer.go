package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const (
	msgInvalidJSON     = "Invalid JSON in request body"
	msgMissingRequired = "Missing required fields"
)

// Sanitizer turns raw submission bodies into records ready for storage.
// It is safe for concurrent use.
type Sanitizer struct {
	schemas map[Entity]*gojsonschema.Schema
}

func NewSanitizer() (*Sanitizer, error) {
	s := &Sanitizer{schemas: make(map[Entity]*gojsonschema.Schema, len(requiredFields))}
	for entity := range requiredFields {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaFor(entity)))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", entity, err)
		}
		s.schemas[entity] = schema
	}
	return s, nil
}

// Decode parses body as a single JSON object. Numbers are kept as json.Number.
func Decode(body []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var input map[string]interface{}
	if err := dec.Decode(&input); err != nil || input == nil {
		return nil, apperrors.Validation(msgInvalidJSON)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperrors.Validation(msgInvalidJSON)
	}
	return input, nil
}

// DecodeList parses body as a JSON array of objects, as used by bulk imports.
func DecodeList(body []byte) ([]map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var list []map[string]interface{}
	if err := dec.Decode(&list); err != nil || list == nil {
		return nil, apperrors.Validation(msgInvalidJSON)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperrors.Validation(msgInvalidJSON)
	}
	for _, item := range list {
		if item == nil {
			return nil, apperrors.Validation(msgInvalidJSON)
		}
	}
	return list, nil
}

// Check reports the required fields of entity that are missing or blank in input.
func (s *Sanitizer) Check(entity Entity, input map[string]interface{}) error {
	schema, ok := s.schemas[entity]
	if !ok {
		return fmt.Errorf("no schema for %s", entity)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return apperrors.Validation(msgInvalidJSON)
	}

	failed := make(map[string]bool)
	for _, e := range result.Errors() {
		field := e.Field()
		if e.Type() == "required" {
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
		}
		failed[field] = true
	}
	// Stored text is trimmed with text(), so blank must mean the same thing here.
	for _, field := range requiredFields[entity] {
		if v, ok := input[field].(string); ok && text(v) == "" {
			failed[field] = true
		}
	}
	if len(failed) == 0 {
		return nil
	}

	var details []string
	for _, field := range requiredFields[entity] {
		if failed[field] {
			details = append(details, field+" is required")
		}
	}
	return apperrors.Validation(msgMissingRequired, details...)
}

func (s *Sanitizer) Worker(body []byte) (*models.Worker, error) {
	input, err := s.prepare(EntityWorker, body)
	if err != nil {
		return nil, err
	}
	return workerFrom(input), nil
}

func (s *Sanitizer) ClientRequest(body []byte) (*models.ClientRequest, error) {
	input, err := s.prepare(EntityClientRequest, body)
	if err != nil {
		return nil, err
	}
	return clientRequestFrom(input), nil
}

func (s *Sanitizer) Contact(body []byte) (*models.ContactMessage, error) {
	input, err := s.prepare(EntityContact, body)
	if err != nil {
		return nil, err
	}
	return contactFrom(input), nil
}

func (s *Sanitizer) Franchise(body []byte) (*models.FranchiseApplication, error) {
	input, err := s.prepare(EntityFranchise, body)
	if err != nil {
		return nil, err
	}
	return franchiseFrom(input), nil
}

// WorkerFromMap runs the same pipeline on an already decoded object.
func (s *Sanitizer) WorkerFromMap(input map[string]interface{}) (*models.Worker, error) {
	if err := s.Check(EntityWorker, input); err != nil {
		return nil, err
	}
	return workerFrom(input), nil
}

func (s *Sanitizer) prepare(entity Entity, body []byte) (map[string]interface{}, error) {
	input, err := Decode(body)
	if err != nil {
		return nil, err
	}
	if err := s.Check(entity, input); err != nil {
		return nil, err
	}
	return input, nil
}
