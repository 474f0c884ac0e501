package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mm(v float64) NumericValue {
	return NumericValue{Value: v, Unit: "mm"}
}

func testCollection(t *testing.T) *Collection {
	t.Helper()

	coll := &Collection{}
	require.NoError(t, coll.Add(&PlainAttribute{
		AttributeName: "color",
		ShortName:     "col",
		IsFaceted:     true,
		ValueType:     ColorType,
		AvailableValues: ValueList{
			ColorValue{Name: "red", Hex: "#ff0000"},
			ColorValue{Name: "blue", Hex: "#0000ff"},
		},
	}))
	require.NoError(t, coll.Add(&CompositeAttribute{
		AttributeName: "clothes dimensions",
		ShortName:     "dim",
		SubAttributes: []*PlainAttribute{
			{
				AttributeName:   "width",
				ValueType:       NumericType,
				AvailableValues: ValueList{mm(10), mm(20)},
			},
			{
				AttributeName:   "length",
				ValueType:       NumericType,
				AvailableValues: ValueList{mm(100)},
			},
		},
	}))
	return coll
}

func TestCollectionRoundTrip(t *testing.T) {
	coll := testCollection(t)

	raw, err := json.Marshal(coll)
	require.NoError(t, err)

	var decoded Collection
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, coll.Attributes, decoded.Attributes)

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(again))
}

func TestCollectionScanValueRoundTrip(t *testing.T) {
	coll := testCollection(t)

	stored, err := coll.Value()
	require.NoError(t, err)

	var decoded Collection
	require.NoError(t, decoded.Scan(stored))
	require.Equal(t, coll.Attributes, decoded.Attributes)
}

func TestAddDuplicateAttribute(t *testing.T) {
	coll := testCollection(t)

	err := coll.Add(&PlainAttribute{AttributeName: "color", ValueType: ColorType})
	require.ErrorIs(t, err, ErrDuplicateAttribute)
	require.ErrorIs(t, err, ErrInvalidOperation)
}

func TestRemoveAttribute(t *testing.T) {
	coll := testCollection(t)

	require.True(t, coll.Remove("color"))
	_, ok := coll.Find("color")
	require.False(t, ok)

	before, err := json.Marshal(coll)
	require.NoError(t, err)

	require.False(t, coll.Remove("color"))

	after, err := json.Marshal(coll)
	require.NoError(t, err)
	require.Equal(t, before, after, "no-op removal must leave the document identical")
}

func TestAddValueTypeGuard(t *testing.T) {
	coll := &Collection{}
	require.NoError(t, coll.Add(&PlainAttribute{
		AttributeName:   "weight",
		ValueType:       NumericType,
		AvailableValues: ValueList{NumericValue{Value: 5, Unit: "kg"}},
	}))

	before, err := json.Marshal(coll)
	require.NoError(t, err)

	err = coll.AddValue("weight", ColorValue{Name: "green", Hex: "#00ff00"})
	require.ErrorIs(t, err, ErrTypeMismatch)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, NumericType, mismatch.Expected)
	require.Equal(t, ColorType, mismatch.Actual)

	after, err := json.Marshal(coll)
	require.NoError(t, err)
	require.Equal(t, before, after, "failed add must leave the attribute unchanged")
}

func TestAddValueToCompositeDirectly(t *testing.T) {
	coll := testCollection(t)

	err := coll.AddValue("clothes dimensions", mm(30))
	require.ErrorIs(t, err, ErrInvalidOperation)
}

func TestAddValueMissingAttribute(t *testing.T) {
	coll := testCollection(t)

	err := coll.AddValue("material", StringValue{Value: "cotton"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddValueAppendsDuplicate(t *testing.T) {
	coll := testCollection(t)

	// A structurally equal value is appended again; dedup is the
	// materialization layer's concern.
	require.NoError(t, coll.AddValue("color", ColorValue{Name: "red", Hex: "#ff0000"}))

	attr, ok := coll.Find("color")
	require.True(t, ok)
	require.Len(t, attr.(*PlainAttribute).AvailableValues, 3)
}

func TestRemoveValueFirstMatchOnly(t *testing.T) {
	coll := testCollection(t)
	require.NoError(t, coll.AddValue("color", ColorValue{Name: "red", Hex: "#ff0000"}))

	removed, err := coll.RemoveValue("color", ColorValue{Name: "red", Hex: "#ff0000"})
	require.NoError(t, err)
	require.True(t, removed)

	attr, _ := coll.Find("color")
	require.Len(t, attr.(*PlainAttribute).AvailableValues, 2)
}

func TestRemoveValueNoop(t *testing.T) {
	coll := testCollection(t)

	before, err := json.Marshal(coll)
	require.NoError(t, err)

	removed, err := coll.RemoveValue("color", ColorValue{Name: "green", Hex: "#00ff00"})
	require.NoError(t, err)
	require.False(t, removed)

	after, err := json.Marshal(coll)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestCompositeWidthScenario(t *testing.T) {
	coll := testCollection(t)

	removed, err := coll.RemoveCompositeValue("clothes dimensions", "width", mm(10))
	require.NoError(t, err)
	require.True(t, removed)

	attr, _ := coll.Find("clothes dimensions")
	width := attr.(*CompositeAttribute).Sub("width")
	require.Equal(t, ValueList{mm(20)}, width.AvailableValues)

	removed, err = coll.RemoveCompositeValue("clothes dimensions", "width", mm(10))
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, ValueList{mm(20)}, width.AvailableValues)
}

func TestCompositeValueGuards(t *testing.T) {
	coll := testCollection(t)

	err := coll.AddCompositeValue("color", "width", mm(10))
	require.ErrorIs(t, err, ErrInvalidOperation)

	err = coll.AddCompositeValue("clothes dimensions", "depth", mm(10))
	require.ErrorIs(t, err, ErrNotFound)

	err = coll.AddCompositeValue("sizes", "width", mm(10))
	require.ErrorIs(t, err, ErrNotFound)

	err = coll.AddCompositeValue("clothes dimensions", "width", StringValue{Value: "wide"})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestUnmarshalUnknownKinds(t *testing.T) {
	_, err := UnmarshalValue([]byte(`{"type":"date_type","value":"2020-01-01"}`))
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = UnmarshalAttribute([]byte(`{"type":"matrix","attributeName":"x"}`))
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestPlainAttributeValidate(t *testing.T) {
	attr := &PlainAttribute{
		AttributeName:   "width",
		ValueType:       NumericType,
		AvailableValues: ValueList{mm(10), StringValue{Value: "wide"}},
	}
	require.ErrorIs(t, attr.Validate(), ErrTypeMismatch)
}

func TestNaturalKey(t *testing.T) {
	require.Equal(t, "string:cotton", NaturalKey(StringValue{Value: "cotton", LocalizedValue: "Baumwolle"}))
	require.Equal(t, "numeric:10:mm", NaturalKey(mm(10)))
	require.Equal(t, "numeric:10.5:mm", NaturalKey(NumericValue{Value: 10.5, Unit: "mm"}))
	require.Equal(t, "color:#ff0000", NaturalKey(ColorValue{Name: "red", Hex: "#ff0000"}))
}
