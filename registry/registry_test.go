package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isilon/isilon-sdk/swagger"
)

func def(name string, props map[string]Type, required ...string) *Definition {
	return &Definition{Name: name, Properties: props, Required: required}
}

func idName() map[string]Type {
	return map[string]Type{"id": Scalar("integer"), "name": Scalar("string")}
}

func TestInternDeduplicates(t *testing.T) {
	r := New(Options{})
	a := r.InternOrExtend(def("NfsExport", idName(), "id"), "")
	b := r.InternOrExtend(def("SmbShare", idName(), "id"), "")

	assert.Equal(t, "NfsExport", a)
	assert.Equal(t, "NfsExport", b)
	assert.Equal(t, 1, r.Len())

	// required names are part of the shape
	c := r.InternOrExtend(def("SmbShare", idName()), "")
	assert.Equal(t, "SmbShare", c)
}

func TestInternIgnoresDescription(t *testing.T) {
	r := New(Options{})
	a := def("A", idName())
	a.Description = "first"
	b := def("B", idName())
	b.Description = "second"

	assert.Equal(t, "A", r.InternOrExtend(a, ""))
	assert.Equal(t, "A", r.InternOrExtend(b, ""))
}

func TestInternExtends(t *testing.T) {
	r := New(Options{})
	require.Equal(t, "Item", r.InternOrExtend(def("Item", idName()), ""))

	props := idName()
	props["extra"] = Scalar("boolean")
	got := r.InternOrExtend(def("Item", props), "")
	assert.Equal(t, "ItemExtended", got)

	d, ok := r.Lookup("ItemExtended")
	require.True(t, ok)
	assert.Equal(t, "Item", d.Parent)
	assert.Equal(t, []string{"extra"}, d.PropertyNames())

	flat, required, ok := r.Flatten("ItemExtended")
	require.True(t, ok)
	assert.Len(t, flat, 3)
	assert.Empty(t, required)
}

func TestInternExtendsNewlyRequired(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(def("Item", idName()), "")

	props := idName()
	props["extra"] = Scalar("boolean")
	name := r.InternOrExtend(def("Other", props, "name"), "")
	d, _ := r.Lookup(name)

	assert.Equal(t, "Item", d.Parent)
	assert.Equal(t, []string{"name"}, d.Required)
	assert.Equal(t, []string{"extra", "name"}, d.PropertyNames())
}

func TestInternPrefersSameNamedParent(t *testing.T) {
	r := New(Options{})
	big := map[string]Type{"a": Scalar("string"), "b": Scalar("string"), "c": Scalar("string")}
	r.InternOrExtend(def("Big", big), "")
	r.InternOrExtend(def("Thing", map[string]Type{"a": Scalar("string")}), "")

	props := map[string]Type{"a": Scalar("string"), "b": Scalar("string"), "c": Scalar("string"), "d": Scalar("string")}
	name := r.InternOrExtend(def("Thing", props), "")
	d, _ := r.Lookup(name)

	assert.Equal(t, "ThingExtended", name)
	assert.Equal(t, "Thing", d.Parent)
}

func TestInternPrefersLargestParent(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(def("Small", map[string]Type{"a": Scalar("string"), "b": Scalar("string")}), "")
	r.InternOrExtend(def("Large", map[string]Type{"a": Scalar("string"), "b": Scalar("string"), "c": Scalar("string")}), "")

	props := map[string]Type{"a": Scalar("string"), "b": Scalar("string"), "c": Scalar("string"), "d": Scalar("string")}
	name := r.InternOrExtend(def("New", props), "")
	d, _ := r.Lookup(name)
	assert.Equal(t, "Large", d.Parent)
	assert.Equal(t, []string{"d"}, d.PropertyNames())
}

func TestInternExtendsSingleProperty(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(def("Base", map[string]Type{"id": Scalar("string")}), "")

	name := r.InternOrExtend(def("Derived", map[string]Type{"id": Scalar("string"), "name": Scalar("string")}), "")
	assert.Equal(t, "Derived", name)
	d, _ := r.Lookup(name)
	assert.Equal(t, "Base", d.Parent)
	assert.Equal(t, []string{"name"}, d.PropertyNames())

	assert.Empty(t, r.Rebase())
	d, _ = r.Lookup(name)
	assert.Equal(t, "Base", d.Parent)
}

func TestInternSkipsSmallParents(t *testing.T) {
	r := New(Options{MinParentProperties: 2})
	r.InternOrExtend(def("Tiny", map[string]Type{"a": Scalar("string")}), "")

	name := r.InternOrExtend(def("Other", map[string]Type{"a": Scalar("string"), "b": Scalar("string")}), "")
	d, _ := r.Lookup(name)
	assert.Empty(t, d.Parent)
	assert.Len(t, d.Properties, 2)

	// a same-named parent is exempt from the floor
	name = r.InternOrExtend(def("Tiny", map[string]Type{"a": Scalar("string"), "c": Scalar("string")}), "")
	d, _ = r.Lookup(name)
	assert.Equal(t, "Tiny", d.Parent)
}

func TestInternCollisionSuffix(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(def("Thing", map[string]Type{"a": Scalar("string")}), "Response")
	r.InternOrExtend(def("Thing", map[string]Type{"b": Scalar("string")}), "Response")
	name := r.InternOrExtend(def("Thing", map[string]Type{"c": Scalar("string")}), "Response")

	assert.Equal(t, "ThingResponseResponse", name)
	assert.Equal(t, []string{"Thing", "ThingResponse", "ThingResponseResponse"}, r.Names())
}

func TestSeeds(t *testing.T) {
	r := New(Options{})
	r.Seed(DefaultSeeds(true)...)

	assert.True(t, r.IsSeed("Error"))
	assert.Equal(t, []string{"Error", "Empty", "CreateResponse"}, r.Names())

	id := Type{
		Kind:        KindScalar,
		Scalar:      "string",
		Description: createResponseIDDescription,
		MinLength:   ptr(int64(0)),
		MaxLength:   ptr(int64(255)),
	}
	got := r.InternOrExtend(def("CreateNfsExportResponse", map[string]Type{"id": id}, "id"), "")
	assert.Equal(t, "CreateResponse", got)

	// Seeds never become parents.
	props := map[string]Type{"code": code(), "message": Scalar("string"), "extra": Scalar("string")}
	name := r.InternOrExtend(def("Fault", props, "code", "message"), "")
	d, _ := r.Lookup(name)
	assert.Empty(t, d.Parent)

	assert.Equal(t, "Empty", r.InternOrExtend(def("Nothing", map[string]Type{}), ""))
}

func TestDefaultSeedsWithoutLimits(t *testing.T) {
	seeds := DefaultSeeds(false)
	require.Len(t, seeds, 3)
	id := seeds[2].Properties["id"]
	assert.Nil(t, id.MinLength)
	assert.Nil(t, id.MaxLength)
}

func TestMarkRollback(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(def("Keep", idName()), "")
	mark := r.Mark()
	r.InternOrExtend(def("Drop", map[string]Type{"x": Scalar("string")}), "")
	r.InternOrExtend(def("Keep", map[string]Type{"y": Scalar("string")}), "")
	require.Equal(t, 3, r.Len())

	r.Rollback(mark)
	assert.Equal(t, []string{"Keep"}, r.Names())
	_, ok := r.Lookup("Drop")
	assert.False(t, ok)

	// the index forgets rolled back shapes
	assert.Equal(t, "Again", r.InternOrExtend(def("Again", map[string]Type{"x": Scalar("string")}), ""))
}

func TestSchemas(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(&Definition{Name: "Item", Description: "An item.", Properties: idName(), Required: []string{"id"}}, "")
	props := idName()
	props["extra"] = Array(Ref("Item"))
	r.InternOrExtend(&Definition{Name: "Item", Description: "More.", Properties: props, Required: []string{"id"}}, "")

	schemas := r.Schemas()
	require.Len(t, schemas, 2)

	item := schemas["Item"]
	assert.Equal(t, "object", item.Type)
	assert.Equal(t, "An item.", item.Description)
	assert.Equal(t, []string{"id"}, item.Required)
	assert.Equal(t, "integer", item.Properties["id"].Type)

	ext := schemas["ItemExtended"]
	assert.Equal(t, "More.", ext.Description)
	require.Len(t, ext.AllOf, 2)
	assert.Equal(t, "#/definitions/Item", ext.AllOf[0].Ref)
	own := ext.AllOf[1]
	assert.Equal(t, "object", own.Type)
	assert.Empty(t, own.Required)
	assert.Equal(t, "array", own.Properties["extra"].Type)
	assert.Equal(t, "#/definitions/Item", own.Properties["extra"].Items.Ref)
}

func TestDangling(t *testing.T) {
	r := New(Options{})
	r.InternOrExtend(def("A", map[string]Type{"b": Ref("B"), "c": Array(Ref("C")), "e": Empty()}), "")
	r.InternOrExtend(def("C", map[string]Type{"x": Scalar("string")}), "")

	assert.Equal(t, []string{"A -> B", "A -> Empty"}, r.Dangling())

	r.Seed(DefaultSeeds(true)...)
	assert.Equal(t, []string{"A -> B"}, r.Dangling())
}

func TestFromSchema(t *testing.T) {
	s := &swagger.Schema{
		Description: "Ext.",
		AllOf: []*swagger.Schema{
			{Ref: "#/definitions/Base"},
			{
				Type:     "object",
				Required: []string{"z", "a"},
				Properties: map[string]*swagger.Schema{
					"a": {Type: "string"},
					"z": {Type: "array", Items: &swagger.Schema{Ref: "#/definitions/Empty"}},
				},
			},
		},
	}
	d := FromSchema("Ext", s)
	assert.Equal(t, "Base", d.Parent)
	assert.Equal(t, "Ext.", d.Description)
	assert.Equal(t, []string{"a", "z"}, d.Required)
	assert.Equal(t, Scalar("string"), d.Properties["a"])
	assert.Equal(t, KindEmpty, d.Properties["z"].Items.Kind)
}

func TestSeedsFromSchemas(t *testing.T) {
	seeds := SeedsFromSchemas(map[string]*swagger.Schema{
		"B": {Type: "object"},
		"A": {Type: "object", Properties: map[string]*swagger.Schema{"x": {Type: "integer"}}},
	})
	require.Len(t, seeds, 2)
	assert.Equal(t, "A", seeds[0].Name)
	assert.Equal(t, "B", seeds[1].Name)
}

func ptr[T any](v T) *T { return &v }

func code() Type {
	c := Scalar("integer")
	c.Format = "int32"
	return c
}
