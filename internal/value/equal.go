package value

// Eq implements eq?: like-kinded atoms compare by value, everything else
// compares by reference.
func Eq(a, b Value) bool {
	switch x := a.(type) {
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.Value == y.Value
	case *Empty:
		_, ok := b.(*Empty)
		return ok
	case nil:
		return false
	default:
		return a == b
	}
}

// Equal is deep structural equality. Dictionaries compare entry by entry
// in order; procedures only equal themselves.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Pair:
		y := b.(*Pair)
		return Equal(x.Car, y.Car) && Equal(x.Cdr, y.Cdr)
	case *Dict:
		y := b.(*Dict)
		if len(x.Entries) != len(y.Entries) {
			return false
		}
		for i := range x.Entries {
			if x.Entries[i].Key.Name != y.Entries[i].Key.Name || !Equal(x.Entries[i].Val, y.Entries[i].Val) {
				return false
			}
		}
		return true
	case *PrimOp:
		return x.Op == b.(*PrimOp).Op
	case *Number, *Bool, *String, *Symbol, *Empty:
		return Eq(a, b)
	default:
		return a == b
	}
}
