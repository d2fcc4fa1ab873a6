// Package descriptorloader reads descriptor dumps written as YAML or JSON into a descriptor.Document.
//
// A dump lists root namespaces with their classes, classifiers and functions:
//
//	namespaces:
//	  - name: test
//	    members:
//	      - kind: function
//	        name: max
//	        type_parameters:
//	          - name: T
//	            upper_bounds: ["jet.Comparable<T>?"]
//	        value_parameters:
//	          - { name: a, type: T }
//	        return_type: T
//
// Keys may be written in any case style, they are normalized to lowerCamel before the dump
// is validated against the embedded schema.
package descriptorloader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath derives the format from the file extension. Anything but .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

//go:embed dump.schema.json
var schemaJSON string

var dumpSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	schema, err := jsonschema.CompileString("dump.schema.json", schemaJSON)
	if err != nil {
		panic(err)
	}
	return schema
}

// values of these keys are normalized like keys
var enumKeys = map[string]struct{}{
	kindKey:       {},
	classKindKey:  {},
	modalityKey:   {},
	visibilityKey: {},
	varianceKey:   {},
	projectionKey: {},
}

func LoadFile(path string) (*descriptor.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "descriptorloader")
	}
	doc, err := Load(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}

func Load(data []byte, format Format) (*descriptor.Document, error) {
	tree, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	tree = normalize(tree, "")
	if err := Validate(tree); err != nil {
		return nil, err
	}
	normalized, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(err, "descriptorloader: encode normalized dump")
	}
	b := newBuilder()
	if err := b.build(normalized); err != nil {
		return nil, err
	}
	return b.doc, nil
}

// Validate checks a decoded and normalized dump against the dump schema.
func Validate(tree interface{}) error {
	if err := dumpSchema.Validate(tree); err != nil {
		return errors.Wrap(err, "descriptorloader: validate")
	}
	return nil
}

func decode(data []byte, format Format) (interface{}, error) {
	var tree interface{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, "descriptorloader: decode json")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, "descriptorloader: decode yaml")
		}
	default:
		return nil, errors.Errorf("descriptorloader: unknown format %q", format)
	}
	return tree, nil
}

// normalize converts YAML maps into JSON objects, lowerCamels keys and enum values
// and turns integers into float64 the way encoding/json decodes numbers.
func normalize(value interface{}, key string) interface{} {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			name := strcase.ToLowerCamel(fmt.Sprint(k))
			out[name] = normalize(item, name)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			name := strcase.ToLowerCamel(k)
			out[name] = normalize(item, name)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = normalize(v[i], key)
		}
		return out
	case string:
		if _, ok := enumKeys[key]; ok {
			return strcase.ToLowerCamel(v)
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return v
	}
}
