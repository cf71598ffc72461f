package hclstep

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCtyToNative(t *testing.T) {
	t.Parallel()

	huge, _, err := big.ParseFloat("1e30", 10, 512, big.ToNearestEven)
	require.NoError(t, err)

	testCases := []struct {
		name string
		in   cty.Value
		want any
	}{
		{name: "null", in: cty.NullVal(cty.String), want: nil},
		{name: "unknown", in: cty.UnknownVal(cty.String), want: nil},
		{name: "string", in: cty.StringVal("x"), want: "x"},
		{name: "int", in: cty.NumberIntVal(42), want: int64(42)},
		{name: "negative int", in: cty.NumberIntVal(-7), want: int64(-7)},
		{name: "float", in: cty.NumberFloatVal(1.5), want: 1.5},
		{name: "beyond int64", in: cty.NumberVal(huge), want: 1e30},
		{name: "bool", in: cty.True, want: true},
		{name: "empty tuple", in: cty.EmptyTupleVal, want: []any{}},
		{name: "set", in: cty.SetVal([]cty.Value{cty.StringVal("a")}), want: []any{"a"}},
		{
			name: "nested object",
			in: cty.ObjectVal(map[string]cty.Value{
				"list": cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}),
				"map":  cty.MapVal(map[string]cty.Value{"k": cty.StringVal("v")}),
			}),
			want: map[string]any{
				"list": []any{int64(1), int64(2)},
				"map":  map[string]any{"k": "v"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ctyToNative(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCtyToNative_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := ctyToNative(cty.ObjectVal(map[string]cty.Value{
		"cap": cty.CapsuleVal(cty.Capsule("thing", reflect.TypeOf(struct{}{})), &struct{}{}),
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "in attribute 'cap'")
}
