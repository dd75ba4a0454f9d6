package kinds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funvec/pkg/vec"
)

// kindAliases maps accepted spellings to canonical kind tags.
var kindAliases = map[string]vec.Kind{
	"logical":   KindLogical,
	"bool":      KindLogical,
	"boolean":   KindLogical,
	"integer":   KindInteger,
	"int":       KindInteger,
	"double":    KindDouble,
	"float":     KindDouble,
	"number":    KindDouble,
	"character": KindCharacter,
	"string":    KindCharacter,
	"str":       KindCharacter,
	"list":      KindList,
	"date":      KindDate,
	"datetime":  KindDatetime,
	"null":      vec.KindNull,
}

// ParseType parses a textual type name into a descriptor.
//
// Payload-free kinds are spelled by name or alias: "double", "int", "date".
// Parameterized kinds carry their payload in brackets: "categorical[a,b,c]",
// "binned[0,2.5,5]". Angle brackets are accepted in place of square ones, so
// the output of Descriptor.String parses back.
func ParseType(s string) (vec.Descriptor, error) {
	norm := strings.ReplaceAll(s, "<", "[")
	norm = strings.ReplaceAll(norm, ">", "]")
	name, args, parameterized := strings.Cut(strings.TrimSpace(norm), "[")
	name = strings.ToLower(strings.TrimSpace(name))

	if parameterized {
		if !strings.HasSuffix(args, "]") {
			return vec.Descriptor{}, fmt.Errorf("type %q: missing closing bracket", s)
		}
		args = strings.TrimSuffix(args, "]")
		switch name {
		case "categorical", "cat":
			return CategoricalType(NewLevels(splitArgs(args)...)), nil
		case "binned":
			edges, err := parseEdges(args)
			if err != nil {
				return vec.Descriptor{}, fmt.Errorf("type %q: %w", s, err)
			}
			bounds, err := NewBounds(edges...)
			if err != nil {
				return vec.Descriptor{}, fmt.Errorf("type %q: %w", s, err)
			}
			return BinnedType(bounds), nil
		}
		return vec.Descriptor{}, fmt.Errorf("kind %q takes no parameters", name)
	}

	switch name {
	case "categorical", "cat":
		return CategoricalType(NewLevels()), nil
	case "binned":
		return vec.Descriptor{}, fmt.Errorf("binned needs boundaries, e.g. binned[0,10,20]")
	}
	if k, ok := kindAliases[name]; ok {
		return vec.Descriptor{Kind: k}, nil
	}
	return vec.Descriptor{}, fmt.Errorf("unknown kind %q", name)
}

func splitArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseEdges(args string) ([]float64, error) {
	parts := splitArgs(args)
	edges := make([]float64, len(parts))
	for i, p := range parts {
		e, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("boundary %q is not a number", p)
		}
		edges[i] = e
	}
	return edges, nil
}
