package luastep

import (
	"math"
	"strconv"

	"github.com/Shopify/go-lua"
	"github.com/specialistvlad/stepconfig/internal/unit"
)

// maxDepth bounds table nesting; self-referencing tables hit it instead of
// recursing forever.
const maxDepth = 64

// toGo converts the value at index into plain Go data. Values without a
// JSON form become unit.Opaque. The stack is left unchanged.
func toGo(l *lua.State, index int, depth int) any {
	switch l.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return nil
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return normalizeNumber(n)
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeTable:
		if depth >= maxDepth || !l.CheckStack(4) {
			return unit.Opaque{Kind: "table nested too deeply"}
		}
		return tableToGo(l, index, depth+1)
	default:
		return unit.Opaque{Kind: lua.TypeNameOf(l, index)}
	}
}

// tableToGo turns a sequence (keys 1..n) into []any and anything else
// into map[string]any.
func tableToGo(l *lua.State, index int, depth int) any {
	index = l.AbsIndex(index)

	isArray := true
	maxIndex := 0
	count := 0
	l.PushNil()
	for l.Next(index) {
		count++
		if isArray {
			if idx, ok := arrayIndex(l, -2); ok {
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		l.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			l.RawGetInt(index, i)
			result = append(result, toGo(l, -1, depth))
			l.Pop(1)
		}
		return result
	}

	output := make(map[string]any, count)
	l.PushNil()
	for l.Next(index) {
		key, ok := tableKey(l, -2)
		if !ok {
			kind := lua.TypeNameOf(l, -2)
			l.Pop(2)
			return unit.Opaque{Kind: "table with " + kind + " key"}
		}
		output[key] = toGo(l, -1, depth)
		l.Pop(1)
	}
	return output
}

// arrayIndex reports whether the key at index is a positive integral
// number.
func arrayIndex(l *lua.State, index int) (int, bool) {
	if l.TypeOf(index) != lua.TypeNumber {
		return 0, false
	}
	n, _ := l.ToNumber(index)
	if n < 1 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// tableKey renders a key as a JSON object key. Keys are never converted
// in place: ToString on a number key would corrupt the traversal.
func tableKey(l *lua.State, index int) (string, bool) {
	switch l.TypeOf(index) {
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s, true
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		if v, ok := normalizeNumber(n).(int64); ok {
			return strconv.FormatInt(v, 10), true
		}
		return strconv.FormatFloat(n, 'g', -1, 64), true
	case lua.TypeBoolean:
		return strconv.FormatBool(l.ToBoolean(index)), true
	default:
		return "", false
	}
}

// normalizeNumber returns integral values as int64 so they encode without
// a fractional part. NaN and infinities stay float64 and fail encoding.
func normalizeNumber(n float64) any {
	if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
		return int64(n)
	}
	return n
}
