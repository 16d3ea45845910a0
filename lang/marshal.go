package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Tree.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// ToMap converts the tree to a native Go map structure.
func (t *Tree) ToMap() map[string]any {
	if t == nil || t.Root == nil {
		return map[string]any{}
	}

	return tableToMap(t.Root)
}

func tableToMap(t *Table) map[string]any {
	result := make(map[string]any, t.Len())

	for key, value := range t.All() {
		result[key] = value.ToNative()
	}

	return result
}

// ToNative converts a Value to its native Go type.
func (v *Value) ToNative() any {
	switch v.Kind {
	case KindString, KindIdentifier:
		return v.literalString()

	case KindInteger:
		return v.Int

	case KindFloat:
		return v.Float

	case KindBool:
		return v.Bool

	case KindArray:
		result := make([]any, len(v.Items))
		for i, item := range v.Items {
			result[i] = item.ToNative()
		}

		return result

	case KindTable:
		return tableToMap(v.Table)

	default:
		return nil
	}
}
