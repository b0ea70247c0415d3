package script

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/mkdom/internal/errors"
)

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`

	// source is the file the script was read from, if any.
	source string
}

// Step is one operation on one target.
type Step struct {
	// Target, exactly one of:
	All string `yaml:"all,omitempty"`
	One string `yaml:"one,omitempty"`
	ID  string `yaml:"id,omitempty"`

	Op string `yaml:"op"`

	// Name is the class name, attribute key or data key.
	Name  string `yaml:"name,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Namespace is the attribute namespace URI for attrNS.
	Namespace string `yaml:"ns,omitempty"`

	// Values holds style properties for css and attributes for attrs and
	// attrNS.
	Values map[string]string `yaml:"values,omitempty"`

	// HTML is the markup for the html op.
	HTML string `yaml:"html,omitempty"`

	// Node is the element to insert for insertion ops.
	Node *NodeSpec `yaml:"node,omitempty"`

	// Clone inserts a copy on single targets instead of moving ref.
	Clone bool `yaml:"clone,omitempty"`

	Color string `yaml:"color,omitempty"`
	Width int    `yaml:"width,omitempty"`

	line   int
	column int
}

// NodeSpec describes the element inserted by append, prepend, insertBefore
// and insertAfter.
type NodeSpec struct {
	Tag   string            `yaml:"tag,omitempty"`
	NS    string            `yaml:"ns,omitempty"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
	HTML  string            `yaml:"html,omitempty"`

	// Ref selects an existing element instead of building one.
	Ref string `yaml:"ref,omitempty"`
}

// UnmarshalYAML records the step position for error reports.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	type plain Step
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Step(p)
	s.line = value.Line
	s.column = value.Column
	return nil
}

// Target returns a short description of the step target.
func (s *Step) Target() string {
	switch {
	case s.All != "":
		return "all " + s.All
	case s.One != "":
		return "one " + s.One
	case s.ID != "":
		return "id " + s.ID
	default:
		return ""
	}
}

// Parse decodes and validates a script. JSON input is accepted as YAML.
func Parse(data []byte) (*Script, error) {
	return parse(data, "")
}

// ParseFile reads, decodes and validates a script file. Errors point at the
// failing line.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E160").WithDetail("cannot read " + path).Wrap(err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New("E160").
			Wrap(err).
			WithSuggestion("Check that the script is valid YAML or JSON with a top-level steps list")
	}
	s.source = source
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var knownOps = map[string]bool{
	"css": true, "html": true, "clear": true,
	"addClass": true, "removeClass": true,
	"attr": true, "attrs": true, "attrNS": true, "data": true,
	"remove": true,
	"append": true, "prepend": true, "insertBefore": true, "insertAfter": true,
	"outline": true, "outlineOff": true,
}

func isInsertion(op string) bool {
	switch op {
	case "append", "prepend", "insertBefore", "insertAfter":
		return true
	}
	return false
}

func opNames() string {
	return "css, html, clear, addClass, removeClass, attr, attrs, attrNS, data, remove, append, prepend, insertBefore, insertAfter, outline, outlineOff"
}

// Validate checks every step for a single target, a known operation and
// the arguments that operation needs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("E160").WithDetail("script has no steps")
	}
	for i := range s.Steps {
		st := &s.Steps[i]

		targets := 0
		for _, t := range []string{st.All, st.One, st.ID} {
			if t != "" {
				targets++
			}
		}
		if targets != 1 {
			return s.stepError(errors.New("E162"), st, "Set exactly one of all, one or id")
		}
		if !knownOps[st.Op] {
			return s.stepError(errors.New("E161").WithDetailf("step %d: op %q", i+1, st.Op), st, "Use one of: "+opNames())
		}

		var missing string
		switch {
		case (st.Op == "addClass" || st.Op == "removeClass") && st.Name == "":
			missing = "name"
		case (st.Op == "attr" || st.Op == "data") && st.Name == "":
			missing = "name"
		case (st.Op == "css" || st.Op == "attrs") && len(st.Values) == 0:
			missing = "values"
		case st.Op == "attrNS" && (st.Namespace == "" || len(st.Values) == 0):
			missing = "ns and values"
		case isInsertion(st.Op) && (st.Node == nil || (st.Node.Tag == "" && st.Node.Ref == "")):
			missing = "node.tag or node.ref"
		}
		if missing != "" {
			return s.stepError(errors.New("E160").WithDetailf("step %d: %s needs %s", i+1, st.Op, missing), st, "")
		}
		if st.All != "" && (st.Op == "insertBefore" || st.Op == "insertAfter") {
			// Sibling insertion on many targets is applied element by
			// element and always clones.
			st.Clone = true
		}
	}
	return nil
}

// stepError attaches the step position to err.
func (s *Script) stepError(err *errors.Error, st *Step, suggestion string) *errors.Error {
	if suggestion != "" {
		err.WithSuggestion(suggestion)
	}
	if st.line == 0 {
		return err
	}
	if s.source != "" {
		return err.WithLocation(s.source, st.line, st.column)
	}
	err.Location = &errors.Location{File: "<script>", Line: st.line, Column: st.column}
	return err
}

// String returns the script as YAML.
func (s *Script) String() string {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return ""
	}
	_ = enc.Close()
	return b.String()
}
