package types

import (
	"strings"
)

type (
	// Modifier is the qualifier keyword that can lead a type, it describes the
	// value category rather than its shape.
	Modifier string
	// Container is the kind of generic wrapper a type is, if any.
	Container string
	// Type is the structured form of a type string. Exactly one of the following
	// holds: no container fields are set, Elem is set (array and matrix), or both
	// Key and Value are set (map).
	Type struct {
		Base      string
		Modifier  Modifier
		Lib       string
		Container Container
		Elem      *Type
		Key       *Type
		Value     *Type
	}
)

const (
	// ModSeries marks a value that can change on every bar.
	ModSeries Modifier = "series"
	// ModSimple marks a value known on the first bar.
	ModSimple Modifier = "simple"
	// ModInput marks a value known at input time.
	ModInput Modifier = "input"
	// ModConst marks a compile time constant.
	ModConst Modifier = "const"
	// ModLiteral marks a literal value.
	ModLiteral Modifier = "literal"

	// ContainerArray is a homogeneous sequence.
	ContainerArray Container = "array"
	// ContainerMatrix is a two dimensional grid.
	ContainerMatrix Container = "matrix"
	// ContainerMap is a key/value collection.
	ContainerMap Container = "map"

	// NameUnknown is the base of a type that could not be resolved.
	NameUnknown = "unknown"
	// NameInt is a label for the int type.
	NameInt = "int"
	// NameFloat is a label for the float type.
	NameFloat = "float"
	// NameBool is a label for the bool type.
	NameBool = "bool"
	// NameString is a label for the string type.
	NameString = "string"
	// NameColor is a label for the color type.
	NameColor = "color"
)

var (
	// Unknown is returned for empty or unresolvable input.
	Unknown = &Type{Base: NameUnknown}
	// Int is the int type.
	Int = &Type{Base: NameInt}
	// Float is the float type.
	Float = &Type{Base: NameFloat}
	// Bool is the bool type.
	Bool = &Type{Base: NameBool}
	// String is the string type.
	String = &Type{Base: NameString}
	// Color is the color type.
	Color = &Type{Base: NameColor}

	// Modifiers lists every modifier keyword in the order they are matched.
	Modifiers = []Modifier{ModSeries, ModSimple, ModInput, ModConst, ModLiteral}
	// Containers maps the container keywords to their kind.
	Containers = map[string]Container{
		string(ContainerArray):  ContainerArray,
		string(ContainerMatrix): ContainerMatrix,
		string(ContainerMap):    ContainerMap,
	}
)

// IsModifier reports if the word is one of the modifier keywords.
func IsModifier(word string) bool {
	for _, mod := range Modifiers {
		if string(mod) == word {
			return true
		}
	}
	return false
}

// Simple creates a leaf type with the given name.
func Simple(name string) *Type { return &Type{Base: name} }

// NewArray creates an array container holding elem.
func NewArray(elem *Type) *Type {
	return &Type{Base: string(ContainerArray), Container: ContainerArray, Elem: orUnknown(elem)}
}

// NewMatrix creates a matrix container holding elem.
func NewMatrix(elem *Type) *Type {
	return &Type{Base: string(ContainerMatrix), Container: ContainerMatrix, Elem: orUnknown(elem)}
}

// NewMap creates a map container from key to value.
func NewMap(key, value *Type) *Type {
	return &Type{Base: string(ContainerMap), Container: ContainerMap, Key: orUnknown(key), Value: orUnknown(value)}
}

// WithQualifiers returns a copy of t carrying the modifier and lib. The
// original is left untouched.
func (t *Type) WithQualifiers(mod Modifier, lib string) *Type {
	if t == nil {
		t = Unknown
	}
	cpy := *t
	cpy.Modifier = mod
	cpy.Lib = lib
	return &cpy
}

// Unqualified returns t without its modifier, the lib is kept since it is a
// part of the type name.
func (t *Type) Unqualified() *Type {
	if t == nil || t.Modifier == "" {
		return t
	}
	return t.WithQualifiers("", t.Lib)
}

// IsContainer reports if the type is an array, matrix or map.
func (t *Type) IsContainer() bool { return t != nil && t.Container != "" }

// IsUnknown reports if the type carries no usable information.
func (t *Type) IsUnknown() bool { return t == nil || t.Base == "" || t.Base == NameUnknown }

// IsNumeric reports if the type is a bare int or float.
func (t *Type) IsNumeric() bool {
	return t != nil && !t.IsContainer() && (t.Base == NameInt || t.Base == NameFloat)
}

// String prints the canonical form of the type. A nil type, or one without a
// base, prints as unknown.
func (t *Type) String() string {
	if t == nil || t.Base == "" {
		return NameUnknown
	}
	var out strings.Builder
	if t.Modifier != "" {
		out.WriteString(string(t.Modifier))
		out.WriteByte(' ')
	}
	if t.Lib != "" {
		out.WriteString(t.Lib)
		out.WriteByte('.')
	}
	switch t.Container {
	case ContainerMap:
		out.WriteString(string(ContainerMap))
		out.WriteByte('<')
		out.WriteString(t.Key.String())
		out.WriteString(", ")
		out.WriteString(t.Value.String())
		out.WriteByte('>')
	case ContainerArray, ContainerMatrix:
		out.WriteString(string(t.Container))
		out.WriteByte('<')
		out.WriteString(t.Elem.String())
		out.WriteByte('>')
	default:
		out.WriteString(t.Base)
	}
	return out.String()
}

// Equal compares two types structurally. Two nil types are equal and a nil
// type equals a type with no base since both print as unknown.
func Equal(a, b *Type) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return a.IsUnknown() && b.IsUnknown() && a.String() == b.String()
	}
	return a.Base == b.Base &&
		a.Modifier == b.Modifier &&
		a.Lib == b.Lib &&
		a.Container == b.Container &&
		Equal(a.Elem, b.Elem) &&
		Equal(a.Key, b.Key) &&
		Equal(a.Value, b.Value)
}

// Widen unifies two inferred types. Identical types, ignoring modifiers, unify
// to the first one; an int and a float widen to float. Anything else does not
// unify and nil is returned.
func Widen(a, b *Type) *Type {
	if a == nil || b == nil {
		return nil
	} else if Equal(a.Unqualified(), b.Unqualified()) {
		return a
	} else if a.IsNumeric() && b.IsNumeric() && a.Lib == "" && b.Lib == "" {
		return Float
	}
	return nil
}

func orUnknown(t *Type) *Type {
	if t == nil {
		return Unknown
	}
	return t
}
