package tree

import (
	"gopkg.in/yaml.v3"
)

type yamlRule struct {
	Rule     string  `yaml:"rule"`
	Children []*Node `yaml:"children,omitempty"`
}

type yamlLeaf struct {
	Token string `yaml:"token,omitempty"`
	Error string `yaml:"error,omitempty"`
	Text  string `yaml:"text"`
	Line  int    `yaml:"line"`
	Col   int    `yaml:"col"`
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	if n.IsRule() {
		return yamlRule{
			Rule:     n.Rule(),
			Children: n.Children(),
		}, nil
	}

	leaf := yamlLeaf{}
	if tok := n.Token(); tok != nil {
		leaf.Text = rawText(tok)
		leaf.Line, leaf.Col = tok.Pos()
		if n.Type() == NodeTypeError {
			leaf.Error = tok.Type().String()
		} else {
			leaf.Token = tok.Type().String()
		}
	}
	return leaf, nil
}

// EncodeYAML returns the YAML representation of the tree.
func EncodeYAML(n *Node) ([]byte, error) {
	return yaml.Marshal(n)
}
