package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fixture is the YAML shape jwp-demo reads: the issuer key's kid and
// subtype (the key pair itself is generated fresh on each run), the
// presentation parameters a holder would supply, and the nested claim
// document to issue over.
type fixture struct {
	Issuer struct {
		Kid     string `yaml:"kid"`
		Subtype string `yaml:"subtype"`
	} `yaml:"issuer"`
	Aud    string    `yaml:"aud"`
	Nonce  string    `yaml:"nonce"`
	Hide   []string  `yaml:"hide"`
	Claims yaml.Node `yaml:"claims"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// claimsJSON re-encodes the fixture's claim document as JSON, walking the
// yaml.Node tree directly instead of decoding through map[string]interface{}
// so mapping-key order survives exactly as authored in the fixture file. A
// native Go map has randomized iteration order, which would silently
// reorder the claims pkg/flatten assigns indices to.
func (f *fixture) claimsJSON() ([]byte, error) {
	return nodeToJSON(&f.Claims)
}

func nodeToJSON(n *yaml.Node) ([]byte, error) {
	switch n.Kind {
	case 0:
		return []byte("null"), nil
	case yaml.DocumentNode:
		return nodeToJSON(n.Content[0])
	case yaml.AliasNode:
		return nodeToJSON(n.Alias)
	case yaml.MappingNode:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i := 0; i < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := nodeToJSON(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case yaml.SequenceNode:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := nodeToJSON(item)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}
