package bymlcore

import (
	"encoding/base64"
	"strconv"

	"github.com/zeldamods/oead/internal/utils"
	"gopkg.in/yaml.v3"
)

// Explicit scalar tags used to round-trip BYML's distinct numeric widths
// through YAML, which otherwise only has one integer and one float kind.
// Bool, Int32, and String use tags too (String to guard against a value
// that merely looks like a number or bool); everything else is implicit.
const (
	tagYAMLUInt32  = "!u"
	tagYAMLInt64   = "!l"
	tagYAMLUInt64  = "!ul"
	tagYAMLFloat32 = "!f"
	tagYAMLFloat64 = "!d"
	tagYAMLString  = "!str"
)

// ToText renders v as a YAML document.
func ToText(v *Value) (string, error) {
	node := toNode(v)
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", utils.WrapError("byml text render", err)
	}
	return string(out), nil
}

// FromText parses a YAML document back into a Value tree.
func FromText(data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, utils.WrapError("byml text parse", err)
	}
	if len(node.Content) == 0 {
		return NewNull(), nil
	}
	return fromNode(node.Content[0])
}

func toNode(v *Value) *yaml.Node {
	switch v.Type() {
	case TypeNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	case TypeBool:
		b, _ := v.Bool()
		val := "false"
		if b {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case TypeInt32:
		i, _ := v.Int32()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(i), 10)}
	case TypeUInt32:
		u, _ := v.UInt32()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagYAMLUInt32, Value: strconv.FormatUint(uint64(u), 10)}
	case TypeInt64:
		i, _ := v.Int64()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagYAMLInt64, Value: strconv.FormatInt(i, 10)}
	case TypeUInt64:
		u, _ := v.UInt64()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagYAMLUInt64, Value: strconv.FormatUint(u, 10)}
	case TypeFloat32:
		f, _ := v.Float32()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagYAMLFloat32, Value: strconv.FormatFloat(float64(f), 'g', -1, 32)}
	case TypeFloat64:
		f, _ := v.Float64()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagYAMLFloat64, Value: strconv.FormatFloat(f, 'g', -1, 64)}
	case TypeString:
		s, _ := v.String()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagYAMLString, Value: s}
	case TypeBinary:
		b, _ := v.Binary()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(b)}
	case TypeArray:
		arr, _ := v.Array()
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range arr {
			n.Content = append(n.Content, toNode(e))
		}
		return n
	case TypeHash:
		h, _ := v.HashValue()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range h.Keys() {
			child, _ := h.Get(k)
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			n.Content = append(n.Content, keyNode, toNode(child))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	}
}

func fromNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarFromNode(n)
	case yaml.SequenceNode:
		elems := make([]*Value, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return NewArray(elems), nil
	case yaml.MappingNode:
		h := NewHashMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if _, exists := h.Get(key); exists {
				return nil, utils.WrapError("byml text hash key", utils.ErrDuplicateKey)
			}
			h.Set(key, v)
		}
		return NewHash(h), nil
	default:
		return nil, utils.WrapError("byml text node", utils.ErrBadType)
	}
}

func scalarFromNode(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case tagYAMLUInt32:
		u, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil {
			return nil, utils.WrapError("byml !u", err)
		}
		return NewUInt32(uint32(u)), nil
	case tagYAMLInt64:
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, utils.WrapError("byml !l", err)
		}
		return NewInt64(i), nil
	case tagYAMLUInt64:
		u, err := strconv.ParseUint(n.Value, 10, 64)
		if err != nil {
			return nil, utils.WrapError("byml !ul", err)
		}
		return NewUInt64(u), nil
	case tagYAMLFloat32:
		f, err := strconv.ParseFloat(n.Value, 32)
		if err != nil {
			return nil, utils.WrapError("byml !f", err)
		}
		return NewFloat32(float32(f)), nil
	case tagYAMLFloat64:
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, utils.WrapError("byml !d", err)
		}
		return NewFloat64(f), nil
	case tagYAMLString:
		return NewString(n.Value), nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return nil, utils.WrapError("byml !!binary", err)
		}
		return NewBinary(b), nil
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		return NewBool(n.Value == "true"), nil
	case "!!int", "":
		// Untagged plain scalars default to Int32 unless YAML's own resolver
		// already classified them; fall back on ParseInt then ParseFloat.
		if n.Tag == "" {
			switch n.ShortTag() {
			case "!!bool":
				return NewBool(n.Value == "true"), nil
			case "!!null":
				return NewNull(), nil
			case "!!float":
				f, err := strconv.ParseFloat(n.Value, 32)
				if err != nil {
					return nil, utils.WrapError("byml plain float", err)
				}
				return NewFloat32(float32(f)), nil
			case "!!str":
				return NewString(n.Value), nil
			}
		}
		i, err := strconv.ParseInt(n.Value, 10, 32)
		if err != nil {
			return nil, utils.WrapError("byml plain int", err)
		}
		return NewInt32(int32(i)), nil
	default:
		return nil, utils.WrapError("byml unknown tag "+n.Tag, utils.ErrBadType)
	}
}
