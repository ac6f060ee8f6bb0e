package transform

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/substationdsl/internal/ctxlog"
	"github.com/vk/substationdsl/internal/dslerr"
	"github.com/vk/substationdsl/internal/grammar"
	"github.com/vk/substationdsl/internal/ir"
)

func transformSource(t *testing.T, src string) (*ir.IR, error) {
	t.Helper()
	doc, err := grammar.Parse("test.sub", src)
	require.NoError(t, err)
	return Transform(context.Background(), doc)
}

func TestTransform_BusLineChain(t *testing.T) {
	t.Parallel()

	// Arrange
	src := `ADD_BUS id=b1, kv=138
ADD_LINE id=l1, kv=138, type=OHL, length_km=10, thermal_A=1000
CONNECT series=[b1, l1]`

	// Act
	r, err := transformSource(t, src)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "l1"}, r.ObjectIDs())
	require.Len(t, r.Chains(), 1)
	assert.Equal(t, []string{"b1", "l1"}, r.Chains()[0].Refs())
	assert.Equal(t, ir.Location{Line: 3, Column: 1}, r.Chains()[0].Loc)

	line, ok := r.Object("l1")
	require.True(t, ok)
	assert.Equal(t, ir.Line, line.Kind)
	assert.Equal(t, ir.Location{Line: 2, Column: 1}, line.Loc)
	if diff := cmp.Diff([]string{"id", "kv", "type", "length_km", "thermal_A"}, line.Attrs.Keys()); diff != "" {
		t.Errorf("attribute order mismatch (-want +got):\n%s", diff)
	}
	typ, _ := line.Attrs.Get("type")
	assert.Equal(t, ir.Ident("OHL"), typ)
}

func TestTransform_DuplicateID(t *testing.T) {
	t.Parallel()

	src := `ADD_BUS id=b1, kv=138
ADD_LINE id=l1, kv=138, type=OHL, length_km=10, thermal_A=1000
ADD_BUS id=b1, kv=138
CONNECT series=[b1, l1]`

	r, err := transformSource(t, src)

	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, dslerr.ErrDuplicateID))
	assert.True(t, errors.Is(err, dslerr.ErrSemantic))
	assert.Contains(t, err.Error(), "'b1'")

	var serr *dslerr.SemanticError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 3, serr.Line)
}

func TestTransform_DuplicateIDAcrossKinds(t *testing.T) {
	t.Parallel()

	_, err := transformSource(t, `ADD_BUS id=x1, kv=138
ADD_EARTHING_SWITCH id=x1, kv=138, make_kA=40`)

	assert.Equal(t, dslerr.CodeDuplicateID, dslerr.CodeOf(err))
}

func TestTransform_ExtensionMergePrecedence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		src          string
		id           string
		expectedKeys []string
		expectedKV   float64
	}{
		{
			name:         "explicit kv wins over extension kv",
			src:          `ADD_BUS id=b1, kv=138, {kv=69, name="Main"}`,
			id:           "b1",
			expectedKeys: []string{"id", "kv", "name"},
			expectedKV:   138,
		},
		{
			name:         "extension cannot replace the id",
			src:          `ADD_LINE_TRAP id=lt1, kv=230, carrier_kHz=120, {id=other, tuned=true}`,
			id:           "lt1",
			expectedKeys: []string{"id", "kv", "carrier_kHz", "tuned"},
			expectedKV:   230,
		},
		{
			name:         "no extension",
			src:          `ADD_EARTHING_SWITCH id=es1, kv=13.8, make_kA=31.5`,
			id:           "es1",
			expectedKeys: []string{"id", "kv", "make_kA"},
			expectedKV:   13.8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := transformSource(t, tc.src)
			require.NoError(t, err)

			obj, ok := r.Object(tc.id)
			require.True(t, ok)
			assert.Equal(t, tc.expectedKeys, obj.Attrs.Keys())
			kv, ok := obj.KV()
			require.True(t, ok)
			assert.Equal(t, tc.expectedKV, kv)
		})
	}
}

func TestTransform_AllKinds(t *testing.T) {
	t.Parallel()

	src := `ADD_BUS id=bus1, kv=138
ADD_BAY id=bay1, kind=LINE, kv=138, bus=bus1
ADD_COUPLER id=cpl1, kv=138, from_bus=bus1, to_bus=bus2
ADD_BREAKER id=brk1, kv=138, interrupting_kA=40, type=SF6, continuous_A=2000
ADD_DISCONNECTOR id=ds1, kv=138, type=CENTER_BREAK, continuous_A=2000
ADD_TRANSFORMER id=t1, type=TWO_WINDING, rated_MVA=100, vector_group="YNd1", percentZ=12, tap={side=HV, range_pct=10, steps=17, regulation_mode=AUTO}
ADD_LINE id=ln1, kv=138, type=OHL, length_km=42, thermal_A=1200, seq_params={R1_ohm_per_km=0.05, X1_ohm_per_km=0.4, R0_ohm_per_km=0.2}
ADD_CABLE id=cb1, kv=13.8, length_km=1.2, thermal_A=400, insulation=XLPE
ADD_EARTHING_SWITCH id=es1, kv=138, make_kA=40
ADD_CT id=ct1, kv=138, ratio="2000/5", class="5P20"
ADD_VT id=vt1, kv=138, type=CAPACITIVE, ratio="138000/115", class=0.2
ADD_RELAY_GROUP id=rg1, functions=[DIFF, DIST, OC], dc_supply=dc1, trip_objects=[brk1]
ADD_SHUNT_CAP_BANK id=cap1, kv=13.8, mvar_total=10, steps=4, connection=WYE, tuning={tuned_Hz=250, Q_factor=40}
ADD_SHUNT_REACTOR id=sr1, kv=138, mvar=25, switchable=true
ADD_SERIES_CAP id=sc1, kv=138, compensation_pct=40, protection=MOV
ADD_SVC id=svc1, kv=138, mvar_range=[-50, 150], control_mode=VOLTAGE, response_ms=20
ADD_STATCOM id=stc1, kv=138, mvar_range=[-100, 100], control_mode=VOLTAGE
ADD_SURGE_ARRESTER id=sa1, kv=138, mcov_kV=84, class=STATION
ADD_LINE_TRAP id=lt1, kv=138, carrier_kHz=100
ADD_STATION_SERVICE_TRANSFORMER id=sst1, primary_kv=13.8, secondary_kV=0.48, kVA=500
ADD_DC_SYSTEM id=dc1, nominal_V=125, capacity_Ah=200, redundancy="N+1"`

	r, err := transformSource(t, src)
	require.NoError(t, err)
	require.Equal(t, 21, r.NumObjects())

	seen := make(map[ir.Kind]bool)
	for o := range r.Objects() {
		seen[o.Kind] = true
	}
	for _, k := range ir.Kinds() {
		assert.True(t, seen[k], "kind %s not produced", k)
	}

	t1, _ := r.Object("t1")
	tap, ok := t1.Attrs.Get("tap")
	require.True(t, ok)
	tapAttrs, ok := tap.AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"side", "range_pct", "steps", "regulation_mode"}, tapAttrs.Keys())
	vg, _ := t1.Attrs.Get("vector_group")
	assert.Equal(t, ir.Text("YNd1"), vg)
	_, hasKV := t1.KV()
	assert.False(t, hasKV)

	ln1, _ := r.Object("ln1")
	seq, _ := ln1.Attrs.Get("seq_params")
	seqAttrs, _ := seq.AsMap()
	assert.Equal(t, []string{"R1_ohm_per_km", "X1_ohm_per_km", "R0_ohm_per_km"}, seqAttrs.Keys())

	vt1, _ := r.Object("vt1")
	class, _ := vt1.Attrs.Get("class")
	assert.Equal(t, ir.Number(0.2), class)

	rg1, _ := r.Object("rg1")
	fns, _ := rg1.Attrs.Get("functions")
	assert.Equal(t, ir.List(ir.Ident("DIFF"), ir.Ident("DIST"), ir.Ident("OC")), fns)

	svc1, _ := r.Object("svc1")
	rng, _ := svc1.Attrs.Get("mvar_range")
	assert.Equal(t, ir.List(ir.Number(-50), ir.Number(150)), rng)
	assert.True(t, svc1.Attrs.Has("response_ms"))

	stc1, _ := r.Object("stc1")
	assert.False(t, stc1.Attrs.Has("response_ms"))

	sr1, _ := r.Object("sr1")
	sw, _ := sr1.Attrs.Get("switchable")
	assert.Equal(t, ir.Bool(true), sw)

	ct1, _ := r.Object("ct1")
	assert.False(t, ct1.Attrs.Has("burden_VA"))
}

func TestTransform_ChainsAndTerminals(t *testing.T) {
	t.Parallel()

	r, err := transformSource(t, `CONNECT series=[OPEN_END, brk1, bus1, STUB("east")], {phase=A}
CONNECT series=[]
CONNECT series=[x, x, y]`)
	require.NoError(t, err)

	chains := r.Chains()
	require.Len(t, chains, 3)

	assert.Equal(t, `[OPEN_END, brk1, bus1, STUB("east")]`, chains[0].String())
	assert.Equal(t, []string{"phase"}, chains[0].Attrs.Keys())
	assert.Empty(t, chains[1].Elements)
	assert.Equal(t, []string{"x", "x", "y"}, chains[2].Refs())
}

func TestTransform_PassiveStatements(t *testing.T) {
	t.Parallel()

	src := `PAGE id=p1, title="Overview", voltage_scope=[138, 13.8], buses=[b1], bays=[], routing={pref=ORTHOGONAL, avoid_crossing=true}, {title="ignored", owner=ops}
STYLE theme=dark, grid=true
STYLE theme=light
SET_LAYOUT direction=LR
SET_LAYOUT spacing=40
LABEL target=b1, text="Main bus"
APPEND_TO_BAY bay_id=bay1, object_id=brk1
VALIDATE
EMIT_SPEC format=json`

	r, err := transformSource(t, src)
	require.NoError(t, err)

	p, ok := r.Page("p1")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "title", "voltage_scope", "buses", "bays", "routing", "owner"}, p.Attrs.Keys())
	title, _ := p.Attrs.Get("title")
	assert.Equal(t, ir.Text("Overview"), title)

	theme, _ := r.Style().Get("theme")
	assert.Equal(t, ir.Ident("light"), theme)
	assert.Equal(t, []string{"theme", "grid"}, r.Style().Keys())

	layout, ok := r.Meta().Get("layout")
	require.True(t, ok)
	layoutAttrs, _ := layout.AsMap()
	assert.Equal(t, []string{"direction", "spacing"}, layoutAttrs.Keys())

	require.Len(t, r.Labels(), 1)
	assert.Equal(t, "b1", r.Labels()[0].Target)
	require.Len(t, r.BayMembers(), 1)
	assert.Equal(t, "brk1", r.BayMembers()[0].ObjectID)

	assert.True(t, r.HasDirective(ir.DirectiveValidate))
	assert.True(t, r.HasDirective(ir.DirectiveEmitSpec))
}

func TestTransform_DuplicatePage(t *testing.T) {
	t.Parallel()

	_, err := transformSource(t, `PAGE id=p1, title="A", voltage_scope=[], buses=[], bays=[]
PAGE id=p1, title="B", voltage_scope=[], buses=[], bays=[]`)

	assert.Equal(t, dslerr.CodeDuplicatePage, dslerr.CodeOf(err))
}

func TestTransform_MissingMandatoryValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		statement    *grammar.Statement
		expectedCode string
	}{
		{
			name:         "missing id",
			statement:    &grammar.Statement{Bus: &grammar.AddBus{KV: grammar.Num{Set: true, V: 138}}},
			expectedCode: dslerr.CodeMissingID,
		},
		{
			name:         "missing numeric slot",
			statement:    &grammar.Statement{Bus: &grammar.AddBus{ID: "b1"}},
			expectedCode: dslerr.CodeMissingAttr,
		},
		{
			name: "missing scalar slot",
			statement: &grammar.Statement{CT: &grammar.AddCT{
				ID: "ct1",
				KV: grammar.Num{Set: true, V: 138},
			}},
			expectedCode: dslerr.CodeMissingAttr,
		},
		{
			name:         "empty statement",
			statement:    &grammar.Statement{},
			expectedCode: dslerr.CodeUnknownStatement,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := &grammar.Document{Statements: []*grammar.Statement{tc.statement}}
			r, err := Transform(context.Background(), doc)

			require.Error(t, err)
			assert.Nil(t, r)
			assert.Equal(t, tc.expectedCode, dslerr.CodeOf(err))
		})
	}
}

func TestTransform_MissingAttrReportsLocation(t *testing.T) {
	t.Parallel()

	doc := &grammar.Document{Statements: []*grammar.Statement{{
		Line: &grammar.AddLine{Pos: lexer.Position{Line: 7, Column: 3}, ID: "l1"},
	}}}

	_, err := Transform(context.Background(), doc)

	var serr *dslerr.SemanticError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 7, serr.Line)
	assert.Equal(t, 3, serr.Column)
	assert.Contains(t, serr.Message, "'kv'")
}

func TestTransform_Deterministic(t *testing.T) {
	t.Parallel()

	src := `ADD_BUS id=b1, kv=138, {z=1, a=2}
ADD_BREAKER id=k1, kv=138, interrupting_kA=40, type=VACUUM, continuous_A=1200
CONNECT series=[b1, k1]
STYLE theme=dark`
	doc, err := grammar.Parse("", src)
	require.NoError(t, err)

	first, err := Transform(context.Background(), doc)
	require.NoError(t, err)
	second, err := Transform(context.Background(), doc)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Canonical(), second.Canonical()); diff != "" {
		t.Errorf("transform is not deterministic (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestTransform_LogsThroughContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	doc, err := grammar.Parse("", "ADD_BUS id=b1, kv=138")
	require.NoError(t, err)
	_, err = Transform(ctx, doc)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Registered object.")
	assert.Contains(t, buf.String(), "id=b1")
	assert.Contains(t, buf.String(), "objects=1")
}
