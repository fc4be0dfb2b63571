package humanjson

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// MaxNestingDepth bounds normalization recursion. Inputs nested deeper
// than this (including chains of Representer substitutions) fail with
// ErrMaxDepth instead of exhausting the stack.
var MaxNestingDepth = 10000

var (
	// ErrCyclicValue is returned when a container reaches itself.
	ErrCyclicValue = errors.New("humanjson: cyclic structure")
	// ErrMaxDepth is returned when input nesting exceeds MaxNestingDepth.
	ErrMaxDepth = errors.New("humanjson: max nesting depth exceeded")
)

// AbsentValue is the type of the Absent sentinel.
type AbsentValue struct{}

// Absent is the explicit "no value" marker, distinct from null. Object
// members holding Absent are dropped from output, array elements
// render as null (arrays cannot have holes), and an Absent root
// renders as the empty string. Values that cannot be represented in
// JSON (funcs, channels, non-finite floats) normalize to Absent too.
var Absent = AbsentValue{}

// Representer substitutes a value with its JSON representation before
// layout. The result is normalized recursively, so a Representer may
// return maps, slices, or further Representers.
type Representer interface {
	JSONRepresentation() any
}

// Member is one key/value entry of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is an insertion-ordered collection of key/value members.
// Plain Go maps iterate in unspecified order, so their keys are
// emitted in sorted order even when key sorting is off; use Object
// when the original member order matters.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an Object seeded with the given members, in order.
func NewObject(members ...Member) *Object {
	o := &Object{}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set appends the member, or replaces the value in place when the key
// is already present. It returns o for chaining.
func (o *Object) Set(key string, value any) *Object {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return o
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns the members in insertion order. The slice is shared;
// callers must not modify it.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

type kind uint8

const (
	kindAbsent kind = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

// node is the normalized, JSON-representable form of an input value.
// Numbers carry their final encoded literal so json.Number input
// round-trips exactly.
type node struct {
	kind kind
	b    bool
	num  string
	str  string
	arr  []node
	obj  []objMember
	// primitiveSrc records whether the pre-normalization input was a
	// bare scalar. Fill wrapping only packs sibling groups whose
	// members all were: a date-like value that normalizes to a string
	// still disqualifies its group.
	primitiveSrc bool
}

type objMember struct {
	key string
	val node
}

var (
	absentNode = node{kind: kindAbsent, primitiveSrc: true}
	nullNode   = node{kind: kindNull, primitiveSrc: true}
)

// normalizer walks an input value and coerces it into the node model.
// seen tracks container identities along the current path for cycle
// detection.
type normalizer struct {
	cmp   *keyComparator
	depth int
	seen  map[uintptr]struct{}
}

func (n *normalizer) normalize(v any) (node, error) {
	if n.depth >= MaxNestingDepth {
		return node{}, ErrMaxDepth
	}
	n.depth++
	defer func() { n.depth-- }()

	switch x := v.(type) {
	case nil:
		return nullNode, nil
	case AbsentValue, *AbsentValue:
		return absentNode, nil
	case bool:
		return node{kind: kindBool, b: x, primitiveSrc: true}, nil
	case string:
		return node{kind: kindString, str: x, primitiveSrc: true}, nil
	case json.Number:
		if x == "" {
			return absentNode, nil
		}
		return node{kind: kindNumber, num: string(x), primitiveSrc: true}, nil
	case int:
		return intNode(int64(x)), nil
	case int8:
		return intNode(int64(x)), nil
	case int16:
		return intNode(int64(x)), nil
	case int32:
		return intNode(int64(x)), nil
	case int64:
		return intNode(x), nil
	case uint:
		return uintNode(uint64(x)), nil
	case uint8:
		return uintNode(uint64(x)), nil
	case uint16:
		return uintNode(uint64(x)), nil
	case uint32:
		return uintNode(uint64(x)), nil
	case uint64:
		return uintNode(x), nil
	case uintptr:
		return uintNode(uint64(x)), nil
	case float32:
		return floatNode(float64(x), 32), nil
	case float64:
		return floatNode(x, 64), nil
	case *Object:
		return n.normalizeObject(x)
	case Representer:
		nd, err := n.normalize(x.JSONRepresentation())
		if err != nil {
			return node{}, err
		}
		nd.primitiveSrc = false
		return nd, nil
	case json.Marshaler:
		raw, err := x.MarshalJSON()
		if err != nil {
			return absentNode, nil
		}
		return n.normalizeRaw(raw)
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return absentNode, nil
		}
		return node{kind: kindString, str: string(b)}, nil
	case []any:
		if x == nil {
			return nullNode, nil
		}
		return n.normalizeSliceFast(x)
	case map[string]any:
		if x == nil {
			return nullNode, nil
		}
		return n.normalizeMapFast(x)
	}
	return n.normalizeReflect(reflect.ValueOf(v))
}

func (n *normalizer) normalizeObject(o *Object) (node, error) {
	if o == nil {
		return nullNode, nil
	}
	members := make([]objMember, 0, len(o.members))
	for _, m := range o.members {
		nd, err := n.normalize(m.Value)
		if err != nil {
			return node{}, err
		}
		if nd.kind == kindAbsent {
			continue
		}
		members = append(members, objMember{key: m.Key, val: nd})
	}
	return node{kind: kindObject, obj: members}, nil
}

func (n *normalizer) normalizeSliceFast(s []any) (node, error) {
	p := reflect.ValueOf(s).Pointer()
	if err := n.enter(p); err != nil {
		return node{}, err
	}
	defer n.leave(p)
	arr := make([]node, len(s))
	for i, el := range s {
		nd, err := n.normalize(el)
		if err != nil {
			return node{}, err
		}
		arr[i] = nd
	}
	return node{kind: kindArray, arr: arr}, nil
}

func (n *normalizer) normalizeMapFast(m map[string]any) (node, error) {
	p := reflect.ValueOf(m).Pointer()
	if err := n.enter(p); err != nil {
		return node{}, err
	}
	defer n.leave(p)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return n.cmp.Less(keys[i], keys[j]) })
	members := make([]objMember, 0, len(keys))
	for _, k := range keys {
		nd, err := n.normalize(m[k])
		if err != nil {
			return node{}, err
		}
		if nd.kind == kindAbsent {
			continue
		}
		members = append(members, objMember{key: k, val: nd})
	}
	return node{kind: kindObject, obj: members}, nil
}

func (n *normalizer) normalizeReflect(rv reflect.Value) (node, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return absentNode, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nullNode, nil
		}
		p := rv.Pointer()
		if err := n.enter(p); err != nil {
			return node{}, err
		}
		defer n.leave(p)
		return n.normalize(rv.Elem().Interface())
	case reflect.Interface:
		if rv.IsNil() {
			return nullNode, nil
		}
		return n.normalize(rv.Elem().Interface())
	case reflect.Bool:
		return node{kind: kindBool, b: rv.Bool(), primitiveSrc: true}, nil
	case reflect.String:
		return node{kind: kindString, str: rv.String(), primitiveSrc: true}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intNode(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintNode(rv.Uint()), nil
	case reflect.Float32:
		return floatNode(rv.Float(), 32), nil
	case reflect.Float64:
		return floatNode(rv.Float(), 64), nil
	case reflect.Slice:
		if rv.IsNil() {
			return nullNode, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return node{kind: kindString, str: base64.StdEncoding.EncodeToString(rv.Bytes())}, nil
		}
		p := rv.Pointer()
		if err := n.enter(p); err != nil {
			return node{}, err
		}
		defer n.leave(p)
		return n.normalizeSequence(rv)
	case reflect.Array:
		return n.normalizeSequence(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nullNode, nil
		}
		p := rv.Pointer()
		if err := n.enter(p); err != nil {
			return node{}, err
		}
		defer n.leave(p)
		if isSetLike(rv.Type()) {
			return n.normalizeSet(rv)
		}
		return n.normalizeMapReflect(rv)
	case reflect.Struct:
		return n.normalizeOpaque(rv.Interface())
	default:
		// Func, Chan, Complex, UnsafePointer: no JSON representation.
		return absentNode, nil
	}
}

func (n *normalizer) normalizeSequence(rv reflect.Value) (node, error) {
	arr := make([]node, rv.Len())
	for i := range arr {
		nd, err := n.normalize(rv.Index(i).Interface())
		if err != nil {
			return node{}, err
		}
		arr[i] = nd
	}
	return node{kind: kindArray, arr: arr}, nil
}

// isSetLike reports whether t is a map used as a set: any key type
// with an empty struct value. Such maps normalize to an array of
// their keys.
func isSetLike(t reflect.Type) bool {
	e := t.Elem()
	return e.Kind() == reflect.Struct && e.NumField() == 0
}

type mapEntry struct {
	key string
	val reflect.Value
}

func (n *normalizer) sortedEntries(rv reflect.Value) ([]mapEntry, bool) {
	entries := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		ks, ok := mapKeyString(iter.Key())
		if !ok {
			return nil, false
		}
		entries = append(entries, mapEntry{key: ks, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return n.cmp.Less(entries[i].key, entries[j].key) })
	return entries, true
}

func (n *normalizer) normalizeSet(rv reflect.Value) (node, error) {
	entries, ok := n.sortedEntries(rv)
	if !ok {
		return absentNode, nil
	}
	arr := make([]node, 0, len(entries))
	for _, e := range entries {
		nd, err := n.normalize(e.key)
		if err != nil {
			return node{}, err
		}
		arr = append(arr, nd)
	}
	return node{kind: kindArray, arr: arr}, nil
}

func (n *normalizer) normalizeMapReflect(rv reflect.Value) (node, error) {
	entries, ok := n.sortedEntries(rv)
	if !ok {
		// Keys that cannot become JSON strings leave the whole map
		// unrepresentable, matching encoding/json's key rules.
		return absentNode, nil
	}
	members := make([]objMember, 0, len(entries))
	for _, e := range entries {
		nd, err := n.normalize(e.val.Interface())
		if err != nil {
			return node{}, err
		}
		if nd.kind == kindAbsent {
			continue
		}
		members = append(members, objMember{key: e.key, val: nd})
	}
	return node{kind: kindObject, obj: members}, nil
}

func mapKeyString(k reflect.Value) (string, bool) {
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), true
	default:
		return "", false
	}
}

// normalizeOpaque round-trips a value through encoding/json. This is
// how struct tags, embedding, and omitempty are honored without
// reimplementing them; anything encoding/json rejects degrades to
// Absent. Cycles buried inside structs surface here as a marshal
// error and degrade the same way (cycles through bare maps, slices,
// and pointers are caught earlier and reported as ErrCyclicValue).
func (n *normalizer) normalizeOpaque(v any) (node, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return absentNode, nil
	}
	return n.normalizeRaw(raw)
}

func (n *normalizer) normalizeRaw(raw []byte) (node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return absentNode, nil
	}
	nd, err := n.normalize(v)
	if err != nil {
		return node{}, err
	}
	nd.primitiveSrc = false
	return nd, nil
}

func (n *normalizer) enter(p uintptr) error {
	if p == 0 {
		return nil
	}
	if n.seen == nil {
		n.seen = make(map[uintptr]struct{}, 8)
	}
	if _, ok := n.seen[p]; ok {
		return ErrCyclicValue
	}
	n.seen[p] = struct{}{}
	return nil
}

func (n *normalizer) leave(p uintptr) {
	delete(n.seen, p)
}

func intNode(i int64) node {
	return node{kind: kindNumber, num: strconv.FormatInt(i, 10), primitiveSrc: true}
}

func uintNode(u uint64) node {
	return node{kind: kindNumber, num: strconv.FormatUint(u, 10), primitiveSrc: true}
}

func floatNode(f float64, bits int) node {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return absentNode
	}
	return node{kind: kindNumber, num: string(appendFloat(nil, f, bits)), primitiveSrc: true}
}
