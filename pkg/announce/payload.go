package announce

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Announcement payloads are validated against these schemas before any
// pairing flow is started; a malformed announcement is dropped, never
// surfaced as a flow.
const networkSchemaDoc = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"id":   {"type": "string", "minLength": 1},
		"host": {"type": "string", "minLength": 1},
		"port": {"type": "integer", "minimum": 1, "maximum": 65535}
	},
	"required": ["id", "host", "port"],
	"additionalProperties": false
}`

const addonSchemaDoc = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"id":      {"type": "string", "minLength": 1},
		"host":    {"type": "string", "minLength": 1},
		"port":    {"type": "integer", "minimum": 1, "maximum": 65535},
		"api_key": {"type": "string", "minLength": 1},
		"addon":   {"type": "string"}
	},
	"required": ["id", "host", "port", "api_key"],
	"additionalProperties": false
}`

// NetworkPayload is a network-level gateway announcement.
type NetworkPayload struct {
	ID   string `json:"id"`
	Host string `json:"host"`
	Port int    `json:"port"`
}

// AddonPayload is a host-platform announcement that already carries a
// negotiated credential.
type AddonPayload struct {
	ID     string `json:"id"`
	Host   string `json:"host"`
	Port   int    `json:"port"`
	APIKey string `json:"api_key"`
	Addon  string `json:"addon"`
}

var (
	schemaOnce    sync.Once
	schemaErr     error
	networkSchema *jsonschema.Schema
	addonSchema   *jsonschema.Schema
)

func schemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		networkSchema, schemaErr = compileSchema(networkSchemaDoc)
		if schemaErr != nil {
			return
		}
		addonSchema, schemaErr = compileSchema(addonSchemaDoc)
	})
	return networkSchema, addonSchema, schemaErr
}

func compileSchema(doc string) (*jsonschema.Schema, error) {
	var m any
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", m); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	return c.Compile("schema.json")
}

func validate(schema *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(v)
}

// ParseNetwork validates and decodes a network announcement.
func ParseNetwork(raw []byte) (*NetworkPayload, error) {
	network, _, err := schemas()
	if err != nil {
		return nil, err
	}
	if err := validate(network, raw); err != nil {
		return nil, err
	}
	p := &NetworkPayload{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseAddon validates and decodes a host-platform announcement.
func ParseAddon(raw []byte) (*AddonPayload, error) {
	_, addon, err := schemas()
	if err != nil {
		return nil, err
	}
	if err := validate(addon, raw); err != nil {
		return nil, err
	}
	p := &AddonPayload{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}
