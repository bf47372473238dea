package aampcore

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeldamods/oead/internal/nametable"
	"github.com/zeldamods/oead/internal/utils"
	"gopkg.in/yaml.v3"
)

// Explicit per-type scalar/sequence tags. Unlike BYML's textual projection
// (which lets one YAML kind default to one BYML type), every AAMP parameter
// carries an explicit tag so its binary type is reconstructed losslessly
// (spec §4.5) — there is no untagged default.
const (
	tagBool         = "!bool"
	tagF32          = "!f32"
	tagInt          = "!int"
	tagU32          = "!u32"
	tagVec2         = "!vec2"
	tagVec3         = "!vec3"
	tagVec4         = "!vec4"
	tagColor        = "!color"
	tagQuat         = "!quat"
	tagStr32        = "!str32"
	tagStr64        = "!str64"
	tagStr256       = "!str256"
	tagStr          = "!str"
	tagCurve1       = "!curve1"
	tagCurve2       = "!curve2"
	tagCurve3       = "!curve3"
	tagCurve4       = "!curve4"
	tagBufferInt    = "!buffer_int"
	tagBufferF32    = "!buffer_f32"
	tagBufferU32    = "!buffer_u32"
	tagBufferBinary = "!buffer_binary"

	// tagUnknownName marks a list/object/parameter key whose original string
	// is not known — emitted as the hex hash, per spec §4.6/E6.
	tagUnknownName = "!h"
)

// ToText renders pio as a YAML document.
func ToText(pio *ParameterIO) (string, error) {
	node := pioToNode(pio)
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", utils.WrapError("aamp text render", err)
	}
	return string(out), nil
}

// FromText parses a YAML document back into a ParameterIO.
func FromText(data []byte) (*ParameterIO, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, utils.WrapError("aamp text parse", err)
	}
	if len(doc.Content) == 0 {
		return nil, utils.WrapError("aamp text parse", utils.ErrTruncated)
	}
	return pioFromNode(doc.Content[0])
}

func pioToNode(pio *ParameterIO) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	n.Content = append(n.Content,
		strNode("type"), strNode(pio.Type),
		strNode("version"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(pio.Version), 10)},
		strNode("param_root"), listToNode(pio.Root),
	)
	return n
}

func pioFromNode(n *yaml.Node) (*ParameterIO, error) {
	if n.Kind != yaml.MappingNode {
		return nil, utils.WrapError("aamp root", utils.ErrBadType)
	}
	pio := &ParameterIO{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case "type":
			pio.Type = val.Value
		case "version":
			v, err := strconv.ParseUint(val.Value, 10, 32)
			if err != nil {
				return nil, utils.WrapError("aamp version", err)
			}
			pio.Version = uint32(v)
		case "param_root":
			root, err := listFromNode(val)
			if err != nil {
				return nil, err
			}
			pio.Root = root
		}
	}
	if pio.Root == nil {
		return nil, utils.WrapError("aamp param_root", utils.ErrTruncated)
	}
	return pio, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// nameKeyNode builds the mapping-key node for a CRC32 hash: the resolved
// name if the global table knows it, else the explicit hex hash form.
func nameKeyNode(hash uint32) *yaml.Node {
	if name, ok := nametable.Lookup(hash); ok {
		return strNode(name)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagUnknownName, Value: fmt.Sprintf("0x%08X", hash)}
}

// hashFromKeyNode recovers the CRC32 hash a mapping key represents, either
// by re-hashing a known name or by parsing an explicit !h hex literal.
func hashFromKeyNode(n *yaml.Node) (uint32, error) {
	if n.Tag == tagUnknownName {
		s := strings.TrimPrefix(n.Value, "0x")
		s = strings.TrimPrefix(s, "0X")
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, utils.WrapError("aamp !h hash", err)
		}
		return uint32(v), nil
	}
	return Hash(n.Value), nil
}

func listToNode(l *ParameterList) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	lists := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, h := range l.ListKeys() {
		child, _ := l.GetList(h)
		lists.Content = append(lists.Content, nameKeyNode(h), listToNode(child))
	}
	objects := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, h := range l.ObjectKeys() {
		child, _ := l.GetObject(h)
		objects.Content = append(objects.Content, nameKeyNode(h), objectToNode(child))
	}

	n.Content = append(n.Content, strNode("lists"), lists, strNode("objects"), objects)
	return n
}

func listFromNode(n *yaml.Node) (*ParameterList, error) {
	if n.Kind != yaml.MappingNode {
		return nil, utils.WrapError("aamp list", utils.ErrBadType)
	}
	l := NewParameterList()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		switch key {
		case "lists":
			for j := 0; j+1 < len(val.Content); j += 2 {
				h, err := hashFromKeyNode(val.Content[j])
				if err != nil {
					return nil, err
				}
				child, err := listFromNode(val.Content[j+1])
				if err != nil {
					return nil, err
				}
				l.SetList(h, child)
			}
		case "objects":
			for j := 0; j+1 < len(val.Content); j += 2 {
				h, err := hashFromKeyNode(val.Content[j])
				if err != nil {
					return nil, err
				}
				child, err := objectFromNode(val.Content[j+1])
				if err != nil {
					return nil, err
				}
				l.SetObject(h, child)
			}
		}
	}
	return l, nil
}

func objectToNode(o *ParameterObject) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, h := range o.Keys() {
		p, _ := o.Get(h)
		n.Content = append(n.Content, nameKeyNode(h), paramToNode(p))
	}
	return n
}

func objectFromNode(n *yaml.Node) (*ParameterObject, error) {
	if n.Kind != yaml.MappingNode {
		return nil, utils.WrapError("aamp object", utils.ErrBadType)
	}
	o := NewParameterObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		h, err := hashFromKeyNode(n.Content[i])
		if err != nil {
			return nil, err
		}
		p, err := paramFromNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		o.Set(h, p)
	}
	return o, nil
}

func paramToNode(p *Parameter) *yaml.Node {
	switch p.typ {
	case TBool:
		v, _ := p.Bool()
		val := "false"
		if v {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: val}
	case TF32:
		v, _ := p.F32()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagF32, Value: formatF32(v)}
	case TInt:
		v, _ := p.Int()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagInt, Value: strconv.FormatInt(int64(v), 10)}
	case TU32:
		v, _ := p.U32()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagU32, Value: strconv.FormatUint(uint64(v), 10)}
	case TVec2:
		return floatSeqNode(tagVec2, p.floats)
	case TVec3:
		return floatSeqNode(tagVec3, p.floats)
	case TVec4:
		return floatSeqNode(tagVec4, p.floats)
	case TColor:
		return floatSeqNode(tagColor, p.floats)
	case TQuat:
		return floatSeqNode(tagQuat, p.floats)
	case TCurve1:
		return floatSeqNode(tagCurve1, p.floats)
	case TCurve2:
		return floatSeqNode(tagCurve2, p.floats)
	case TCurve3:
		return floatSeqNode(tagCurve3, p.floats)
	case TCurve4:
		return floatSeqNode(tagCurve4, p.floats)
	case TString32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr32, Value: p.str, Style: yaml.DoubleQuotedStyle}
	case TString64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr64, Value: p.str, Style: yaml.DoubleQuotedStyle}
	case TString256:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr256, Value: p.str, Style: yaml.DoubleQuotedStyle}
	case TStringRef:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: p.str, Style: yaml.DoubleQuotedStyle}
	case TBufferInt:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagBufferInt}
		for _, v := range p.bufI {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v), 10)})
		}
		return n
	case TBufferF32:
		return floatSeqNode(tagBufferF32, p.bufF)
	case TBufferU32:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagBufferU32}
		for _, v := range p.bufU {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(v), 10)})
		}
		return n
	case TBufferBinary:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBufferBinary, Value: base64.StdEncoding.EncodeToString(p.bufB)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	}
}

func floatSeqNode(tag string, vals []float32) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag}
	for _, v := range vals {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatF32(v)})
	}
	return n
}

func formatF32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func paramFromNode(n *yaml.Node) (*Parameter, error) {
	switch n.Tag {
	case tagBool:
		return NewBool(n.Value == "true"), nil
	case tagF32:
		f, err := strconv.ParseFloat(n.Value, 32)
		if err != nil {
			return nil, utils.WrapError("aamp !f32", err)
		}
		return NewF32(float32(f)), nil
	case tagInt:
		i, err := strconv.ParseInt(n.Value, 10, 32)
		if err != nil {
			return nil, utils.WrapError("aamp !int", err)
		}
		return NewInt(int32(i)), nil
	case tagU32:
		u, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil {
			return nil, utils.WrapError("aamp !u32", err)
		}
		return NewU32(uint32(u)), nil
	case tagVec2, tagVec3, tagVec4, tagColor, tagQuat:
		fs, err := floatsFromNode(n)
		if err != nil {
			return nil, err
		}
		typ := map[string]ParamType{tagVec2: TVec2, tagVec3: TVec3, tagVec4: TVec4, tagColor: TColor, tagQuat: TQuat}[n.Tag]
		return &Parameter{typ: typ, floats: fs}, nil
	case tagCurve1, tagCurve2, tagCurve3, tagCurve4:
		fs, err := floatsFromNode(n)
		if err != nil {
			return nil, err
		}
		typ := map[string]ParamType{tagCurve1: TCurve1, tagCurve2: TCurve2, tagCurve3: TCurve3, tagCurve4: TCurve4}[n.Tag]
		return &Parameter{typ: typ, floats: fs}, nil
	case tagStr32:
		return &Parameter{typ: TString32, str: n.Value}, nil
	case tagStr64:
		return &Parameter{typ: TString64, str: n.Value}, nil
	case tagStr256:
		return &Parameter{typ: TString256, str: n.Value}, nil
	case tagStr:
		return &Parameter{typ: TStringRef, str: n.Value}, nil
	case tagBufferInt:
		vals := make([]int32, len(n.Content))
		for i, c := range n.Content {
			v, err := strconv.ParseInt(c.Value, 10, 32)
			if err != nil {
				return nil, utils.WrapError("aamp buffer_int", err)
			}
			vals[i] = int32(v)
		}
		return &Parameter{typ: TBufferInt, bufI: vals}, nil
	case tagBufferF32:
		fs, err := floatsFromNode(n)
		if err != nil {
			return nil, err
		}
		return &Parameter{typ: TBufferF32, bufF: fs}, nil
	case tagBufferU32:
		vals := make([]uint32, len(n.Content))
		for i, c := range n.Content {
			v, err := strconv.ParseUint(c.Value, 10, 32)
			if err != nil {
				return nil, utils.WrapError("aamp buffer_u32", err)
			}
			vals[i] = uint32(v)
		}
		return &Parameter{typ: TBufferU32, bufU: vals}, nil
	case tagBufferBinary:
		b, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return nil, utils.WrapError("aamp buffer_binary", err)
		}
		return &Parameter{typ: TBufferBinary, bufB: b}, nil
	default:
		return nil, utils.WrapError("aamp unknown tag "+n.Tag, utils.ErrBadType)
	}
}

func floatsFromNode(n *yaml.Node) ([]float32, error) {
	fs := make([]float32, len(n.Content))
	for i, c := range n.Content {
		f, err := strconv.ParseFloat(c.Value, 32)
		if err != nil {
			return nil, utils.WrapError("aamp float sequence", err)
		}
		fs[i] = float32(f)
	}
	return fs, nil
}
