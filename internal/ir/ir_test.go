package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/substationdsl/internal/dslerr"
)

func attrsOf(pairs ...any) *Attrs {
	a := NewAttrs()
	for i := 0; i < len(pairs); i += 2 {
		a.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return a
}

func TestAttrs_SetPreservesOrder(t *testing.T) {
	a := NewAttrs()
	a.Set("id", Ident("b1"))
	a.Set("kv", Number(138))
	a.Set("id", Ident("b2"))

	assert.Equal(t, []string{"id", "kv"}, a.Keys())
	v, ok := a.Get("id")
	require.True(t, ok)
	assert.Equal(t, "b2", v.Str())
}

func TestAttrs_EmptyAndNil(t *testing.T) {
	var nilAttrs *Attrs
	empty := NewAttrs()

	assert.Nil(t, empty.Keys())
	assert.Nil(t, nilAttrs.Keys())
	assert.Zero(t, nilAttrs.Len())
	assert.False(t, nilAttrs.Has("id"))
	assert.True(t, empty.Equal(nilAttrs))
	assert.True(t, nilAttrs.Equal(empty))
	assert.False(t, empty.Equal(attrsOf("id", Ident("b1"))))
	assert.Empty(t, empty.String())

	clone := nilAttrs.Clone()
	clone.Set("id", Ident("b1"))
	assert.Equal(t, []string{"id"}, clone.Keys())
}

func TestAttrs_CloneIsIndependent(t *testing.T) {
	a := attrsOf("id", Ident("b1"), "kv", Number(138))

	c := a.Clone()
	c.Set("kv", Number(69))
	c.Set("name", Text("Main"))

	assert.True(t, a.Equal(attrsOf("id", Ident("b1"), "kv", Number(138))))
	assert.Equal(t, []string{"id", "kv", "name"}, c.Keys())
	assert.Equal(t, `id=b1, kv=69, name="Main"`, c.String())
}

func TestAttrs_MergeMissing(t *testing.T) {
	testCases := []struct {
		name         string
		main         *Attrs
		ext          *Attrs
		expectedKeys []string
		expectedKV   float64
	}{
		{
			name:         "explicit attribute wins on collision",
			main:         attrsOf("id", Ident("b1"), "kv", Number(138)),
			ext:          attrsOf("kv", Number(69), "name", Text("Main")),
			expectedKeys: []string{"id", "kv", "name"},
			expectedKV:   138,
		},
		{
			name:         "nil extension is a no-op",
			main:         attrsOf("id", Ident("b1"), "kv", Number(138)),
			ext:          nil,
			expectedKeys: []string{"id", "kv"},
			expectedKV:   138,
		},
		{
			name:         "extension keys keep their own order",
			main:         attrsOf("kv", Number(13.8)),
			ext:          attrsOf("z", Bool(true), "a", Bool(false)),
			expectedKeys: []string{"kv", "z", "a"},
			expectedKV:   13.8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.main.MergeMissing(tc.ext)
			assert.Equal(t, tc.expectedKeys, tc.main.Keys())
			kv, ok := tc.main.Number("kv")
			require.True(t, ok)
			assert.Equal(t, tc.expectedKV, kv)
		})
	}
}

func TestValue_KindsAndEquality(t *testing.T) {
	nested := Map(attrsOf("side", Ident("HV"), "steps", Number(17)))

	assert.Equal(t, KindIdent, Ident("SF6").Kind())
	assert.Equal(t, KindTerminal, TerminalValue(OpenEndTerminal()).Kind())
	assert.Equal(t, KindInvalid, Value{}.Kind())

	assert.True(t, List(Number(1), Number(2)).Equal(List(Number(1), Number(2))))
	assert.False(t, List(Number(1)).Equal(List(Number(1), Number(2))))
	assert.False(t, Ident("x").Equal(Text("x")))
	assert.True(t, nested.Equal(Map(attrsOf("side", Ident("HV"), "steps", Number(17)))))
	assert.False(t, nested.Equal(Map(attrsOf("steps", Number(17), "side", Ident("HV")))))

	assert.Equal(t, `{side=HV, steps=17}`, nested.String())
	assert.Equal(t, `STUB("grid-east")`, TerminalValue(StubTerminal("grid-east")).String())
	assert.Equal(t, `[1.5, "x", true]`, List(Number(1.5), Text("x"), Bool(true)).String())
}

func TestKind_ParseRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.Len(t, Kinds(), 21)

	_, err := ParseKind("GENERATOR")
	assert.Error(t, err)
}

func TestBuilder_AddObject(t *testing.T) {
	b := NewBuilder()

	require.NoError(t, b.AddObject(&Object{ID: "b1", Kind: Bus, Attrs: attrsOf("id", Ident("b1"), "kv", Number(138)), Loc: Location{1, 1}}))
	require.NoError(t, b.AddObject(&Object{Kind: Line, Attrs: attrsOf("id", Ident("l1"), "kv", Number(138)), Loc: Location{2, 1}}))

	// Same id, different kind.
	err := b.AddObject(&Object{ID: "b1", Kind: Breaker, Attrs: attrsOf("id", Ident("b1")), Loc: Location{3, 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dslerr.ErrDuplicateID))
	assert.Contains(t, err.Error(), "'b1'")

	err = b.AddObject(&Object{Kind: Bus, Attrs: attrsOf("kv", Number(1)), Loc: Location{4, 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dslerr.ErrMissingID))

	err = b.AddObject(&Object{Kind: Bus, Attrs: attrsOf("id", Text(""), "kv", Number(1)), Loc: Location{5, 1}})
	assert.True(t, errors.Is(err, dslerr.ErrMissingID))

	r := b.Build()
	assert.Equal(t, []string{"b1", "l1"}, r.ObjectIDs())
	bus, ok := r.Object("b1")
	require.True(t, ok)
	assert.Equal(t, Bus, bus.Kind)
	kv, ok := bus.KV()
	require.True(t, ok)
	assert.Equal(t, 138.0, kv)
}

func TestBuilder_AddPageRejectsDuplicates(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddPage(&Page{ID: "p1", Attrs: NewAttrs(), Loc: Location{1, 1}}))

	err := b.AddPage(&Page{ID: "p1", Attrs: NewAttrs(), Loc: Location{2, 1}})
	require.Error(t, err)
	assert.Equal(t, dslerr.CodeDuplicatePage, dslerr.CodeOf(err))
}

func TestAssemble_KeepsDuplicateIDsObservable(t *testing.T) {
	r := Assemble(Parts{Objects: []*Object{
		{ID: "x", Kind: Bus, Attrs: NewAttrs()},
		{ID: "x", Kind: Breaker, Attrs: NewAttrs()},
	}})

	assert.Equal(t, 2, r.NumObjects())
	assert.Equal(t, []string{"x", "x"}, r.ObjectIDs())
	o, ok := r.Object("x")
	require.True(t, ok)
	assert.Equal(t, Breaker, o.Kind)
}

func TestChain_Refs(t *testing.T) {
	c := &Chain{Elements: []Element{
		TerminalElement(OpenEndTerminal()),
		RefElement("brk1"),
		RefElement("bus1"),
		TerminalElement(StubTerminal("remote")),
	}}

	assert.Equal(t, []string{"brk1", "bus1"}, c.Refs())
	assert.Equal(t, `[OPEN_END, brk1, bus1, STUB("remote")]`, c.String())
}

func TestFingerprint_Deterministic(t *testing.T) {
	build := func(kv float64) *IR {
		b := NewBuilder()
		require.NoError(t, b.AddObject(&Object{ID: "b1", Kind: Bus, Attrs: attrsOf("id", Ident("b1"), "kv", Number(kv)), Loc: Location{1, 1}}))
		b.AddChain(&Chain{Elements: []Element{RefElement("b1")}, Loc: Location{2, 1}})
		b.AddDirective(&Directive{Kind: DirectiveValidate, Attrs: NewAttrs(), Loc: Location{3, 1}})
		return b.Build()
	}

	first, second := build(138), build(138)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Len(t, first.Fingerprint(), 64)
	assert.NotEqual(t, first.Fingerprint(), build(69).Fingerprint())
	assert.Contains(t, first.Canonical(), `object "b1" BUS @1:1 {id=b1, kv=138}`)
	assert.True(t, first.HasDirective(DirectiveValidate))
	assert.False(t, first.HasDirective(DirectiveEmitSpec))
}
