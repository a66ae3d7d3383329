package value

import (
	"sort"
	"strings"
)

type DictEntry struct {
	Key *Symbol
	Val Value
}

// Dict is an ordered set of symbol-keyed entries with unique keys.
type Dict struct {
	Entries []DictEntry
}

func (d *Dict) Kind() Kind { return DICT_KIND }
func (d *Dict) String() string {
	var out strings.Builder
	out.WriteString("#<dict")
	for _, e := range d.Entries {
		out.WriteString(" (")
		out.WriteString(e.Key.Name)
		out.WriteByte(' ')
		out.WriteString(e.Val.String())
		out.WriteByte(')')
	}
	out.WriteByte('>')
	return out.String()
}

// NewDict validates key uniqueness and keeps entry order.
func NewDict(entries []DictEntry) (*Dict, error) {
	if dups := DuplicateKeys(entryKeys(entries)); len(dups) > 0 {
		return nil, Errorf(DuplicateKey, "dict: Duplicate key(s) found: %s", strings.Join(dups, ", "))
	}
	out := make([]DictEntry, len(entries))
	copy(out, entries)
	return &Dict{Entries: out}, nil
}

// Get scans entries in order. Keys are unique, so the first match is the only one.
func (d *Dict) Get(key string) (Value, bool) {
	for _, e := range d.Entries {
		if e.Key.Name == key {
			return e.Val, true
		}
	}
	return nil, false
}

func (d *Dict) Keys() []string {
	return entryKeys(d.Entries)
}

// ToAlist converts the dictionary back into its pair-chain encoding.
func (d *Dict) ToAlist() Value {
	vals := make([]Value, len(d.Entries))
	for i, e := range d.Entries {
		vals[i] = Cons(e.Key, e.Val)
	}
	return List(vals...)
}

func entryKeys(entries []DictEntry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key.Name
	}
	return keys
}

// DuplicateKeys returns every key that occurs more than once, sorted.
func DuplicateKeys(keys []string) []string {
	seen := make(map[string]int, len(keys))
	for _, k := range keys {
		seen[k]++
	}
	var dups []string
	for k, n := range seen {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Strings(dups)
	return dups
}

// AlistEntries decodes a pair chain of (symbol . value) pairs. It reports
// MalformedDict for anything that is not such a chain and DuplicateKey when
// two entries share a key.
func AlistEntries(v Value) ([]DictEntry, error) {
	var entries []DictEntry
	for {
		switch l := v.(type) {
		case *Empty:
			if dups := DuplicateKeys(entryKeys(entries)); len(dups) > 0 {
				return nil, Errorf(DuplicateKey, "dict: Duplicate key(s) found: %s", strings.Join(dups, ", "))
			}
			return entries, nil
		case *Pair:
			entry, ok := l.Car.(*Pair)
			if !ok {
				return nil, Errorf(MalformedDict, "dict: entry is not a pair: %s", l.Car)
			}
			key, ok := entry.Car.(*Symbol)
			if !ok {
				return nil, Errorf(MalformedDict, "dict: key is not a symbol: %s", entry.Car)
			}
			entries = append(entries, DictEntry{Key: key, Val: entry.Cdr})
			v = l.Cdr
		default:
			return nil, Errorf(MalformedDict, "dict: not an association list: %s", v)
		}
	}
}

// IsDict is the dict? predicate: Empty, a Dict, or a key-unique alist.
func IsDict(v Value) bool {
	if _, ok := v.(*Dict); ok {
		return true
	}
	_, err := AlistEntries(v)
	return err == nil
}
