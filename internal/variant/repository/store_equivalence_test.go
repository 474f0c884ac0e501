package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
)

// The rewrite store mutates the whole document in memory; the patch store
// extracts one array element, mutates it through the same helpers, and writes
// it back at its index. These tests drive both shapes of the transformation
// over the same starting document and require the results to stay identical
// after every step.

func startingDocument(t *testing.T) []byte {
	t.Helper()

	coll := &attributedomain.Collection{}
	require.NoError(t, coll.Add(&attributedomain.PlainAttribute{
		AttributeName: "colour",
		ShortName:     "colour",
		IsFaceted:     true,
		ValueType:     attributedomain.ColorType,
		AvailableValues: attributedomain.ValueList{
			attributedomain.ColorValue{Name: "Black", Hex: "#000000"},
		},
	}))
	require.NoError(t, coll.Add(&attributedomain.CompositeAttribute{
		AttributeName: "dimensions",
		ShortName:     "dim",
		SubAttributes: []*attributedomain.PlainAttribute{
			{
				AttributeName: "width",
				ShortName:     "w",
				ValueType:     attributedomain.NumericType,
				AvailableValues: attributedomain.ValueList{
					attributedomain.NumericValue{Value: 10, LocalizedValue: "10mm", Unit: "mm"},
				},
			},
			{
				AttributeName:   "length",
				ShortName:       "l",
				ValueType:       attributedomain.NumericType,
				AvailableValues: attributedomain.ValueList{},
			},
		},
	}))

	doc, err := json.Marshal(coll)
	require.NoError(t, err)
	return doc
}

// rewriteDocument applies a mutation the way the rewrite store does: decode
// the whole document, mutate the collection, encode it back.
func rewriteDocument(t *testing.T, doc []byte, mutate func(*attributedomain.Collection) error) []byte {
	t.Helper()

	var coll attributedomain.Collection
	require.NoError(t, json.Unmarshal(doc, &coll))
	require.NoError(t, mutate(&coll))
	out, err := json.Marshal(coll)
	require.NoError(t, err)
	return out
}

type documentEnvelope struct {
	Attributes []json.RawMessage `json:"attributes"`
}

func elementIndex(t *testing.T, env documentEnvelope, attrName string) int {
	t.Helper()

	for i, raw := range env.Attributes {
		var probe struct {
			AttributeName string `json:"attributeName"`
		}
		require.NoError(t, json.Unmarshal(raw, &probe))
		if probe.AttributeName == attrName {
			return i
		}
	}
	t.Fatalf("attribute %q not found in document", attrName)
	return -1
}

// patchDocument applies a mutation the way the patch store does: pull the one
// array element out, mutate it through the shared helpers, splice it back at
// the same index.
func patchDocument(t *testing.T, doc []byte, attrName string, mutate func(attributedomain.Attribute) error) []byte {
	t.Helper()

	var env documentEnvelope
	require.NoError(t, json.Unmarshal(doc, &env))
	idx := elementIndex(t, env, attrName)

	attr, err := attributedomain.UnmarshalAttribute(env.Attributes[idx])
	require.NoError(t, err)
	require.NoError(t, mutate(attr))

	raw, err := attributedomain.MarshalAttribute(attr)
	require.NoError(t, err)
	env.Attributes[idx] = raw

	out, err := json.Marshal(env)
	require.NoError(t, err)
	return out
}

// dropDocumentElement removes the element at the attribute's index, mirroring
// the patch store's path removal.
func dropDocumentElement(t *testing.T, doc []byte, attrName string) []byte {
	t.Helper()

	var env documentEnvelope
	require.NoError(t, json.Unmarshal(doc, &env))
	idx := elementIndex(t, env, attrName)
	env.Attributes = append(env.Attributes[:idx], env.Attributes[idx+1:]...)

	out, err := json.Marshal(env)
	require.NoError(t, err)
	return out
}

func TestRewriteAndPatchProduceIdenticalDocuments(t *testing.T) {
	navy := attributedomain.ColorValue{Name: "Navy", Hex: "#000080"}
	black := attributedomain.ColorValue{Name: "Black", Hex: "#000000"}
	twenty := attributedomain.NumericValue{Value: 20, LocalizedValue: "20mm", Unit: "mm"}

	rewritten := startingDocument(t)
	patched := startingDocument(t)
	require.JSONEq(t, string(rewritten), string(patched))

	rewritten = rewriteDocument(t, rewritten, func(c *attributedomain.Collection) error {
		return c.AddValue("colour", navy)
	})
	patched = patchDocument(t, patched, "colour", func(a attributedomain.Attribute) error {
		return attributedomain.AddValueTo(a, "", navy)
	})
	require.JSONEq(t, string(rewritten), string(patched))

	rewritten = rewriteDocument(t, rewritten, func(c *attributedomain.Collection) error {
		return c.AddCompositeValue("dimensions", "width", twenty)
	})
	patched = patchDocument(t, patched, "dimensions", func(a attributedomain.Attribute) error {
		return attributedomain.AddValueTo(a, "width", twenty)
	})
	require.JSONEq(t, string(rewritten), string(patched))

	rewritten = rewriteDocument(t, rewritten, func(c *attributedomain.Collection) error {
		_, err := c.RemoveValue("colour", black)
		return err
	})
	patched = patchDocument(t, patched, "colour", func(a attributedomain.Attribute) error {
		_, err := attributedomain.RemoveValueFrom(a, "", black)
		return err
	})
	require.JSONEq(t, string(rewritten), string(patched))

	rewritten = rewriteDocument(t, rewritten, func(c *attributedomain.Collection) error {
		_, err := c.RemoveCompositeValue("dimensions", "width", twenty)
		return err
	})
	patched = patchDocument(t, patched, "dimensions", func(a attributedomain.Attribute) error {
		_, err := attributedomain.RemoveValueFrom(a, "width", twenty)
		return err
	})
	require.JSONEq(t, string(rewritten), string(patched))
}

func TestRewriteAndPatchAgreeOnAttributeRemoval(t *testing.T) {
	rewritten := rewriteDocument(t, startingDocument(t), func(c *attributedomain.Collection) error {
		require.True(t, c.Remove("colour"))
		return nil
	})
	patched := dropDocumentElement(t, startingDocument(t), "colour")
	require.JSONEq(t, string(rewritten), string(patched))
}

func TestRewriteAndPatchAgreeOnTypeGuard(t *testing.T) {
	wrong := attributedomain.StringValue{Value: "navy", LocalizedValue: "navy"}

	var coll attributedomain.Collection
	require.NoError(t, json.Unmarshal(startingDocument(t), &coll))
	rewriteErr := coll.AddValue("colour", wrong)
	require.ErrorIs(t, rewriteErr, attributedomain.ErrTypeMismatch)

	var env documentEnvelope
	require.NoError(t, json.Unmarshal(startingDocument(t), &env))
	attr, err := attributedomain.UnmarshalAttribute(env.Attributes[elementIndex(t, env, "colour")])
	require.NoError(t, err)
	patchErr := attributedomain.AddValueTo(attr, "", wrong)
	require.ErrorIs(t, patchErr, attributedomain.ErrTypeMismatch)

	require.Equal(t, rewriteErr.Error(), patchErr.Error())
}
