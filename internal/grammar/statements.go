// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Document is the root of the syntax tree: statements in source order.
type Document struct {
	Statements []*Statement `@@*`
}

// Statement holds exactly one non-nil statement node.
type Statement struct {
	Bus                       *AddBus                       `  @@`
	Bay                       *AddBay                       `| @@`
	Breaker                   *AddBreaker                   `| @@`
	Disconnector              *AddDisconnector              `| @@`
	Coupler                   *AddCoupler                   `| @@`
	Transformer               *AddTransformer               `| @@`
	Line                      *AddLine                      `| @@`
	Cable                     *AddCable                     `| @@`
	EarthingSwitch            *AddEarthingSwitch            `| @@`
	CT                        *AddCT                        `| @@`
	VT                        *AddVT                        `| @@`
	RelayGroup                *AddRelayGroup                `| @@`
	ShuntCapBank              *AddShuntCapBank              `| @@`
	ShuntReactor              *AddShuntReactor              `| @@`
	SeriesCap                 *AddSeriesCap                 `| @@`
	SVC                       *AddSVC                       `| @@`
	STATCOM                   *AddSTATCOM                   `| @@`
	SurgeArrester             *AddSurgeArrester             `| @@`
	LineTrap                  *AddLineTrap                  `| @@`
	StationServiceTransformer *AddStationServiceTransformer `| @@`
	DCSystem                  *AddDCSystem                  `| @@`

	Connect     *Connect     `| @@`
	AppendToBay *AppendToBay `| @@`
	Page        *Page        `| @@`
	Style       *Style       `| @@`
	SetLayout   *SetLayout   `| @@`
	Label       *Label       `| @@`
	Validate    *Validate    `| @@`
	EmitSpec    *EmitSpec    `| @@`
}

// AddBus declares a busbar at a nominal voltage.
type AddBus struct {
	Pos lexer.Position

	ID  string  `"ADD_BUS" "id" "=" @Ident`
	KV  Num     `"," "kv" "=" @Number`
	Ext *MapLit `( "," @@ )?`
}

// AddBay declares a bay of the given kind attached to a bus.
type AddBay struct {
	Pos lexer.Position

	ID   string  `"ADD_BAY" "id" "=" @Ident`
	Kind string  `"," "kind" "=" @("LINE" | "TRANSFORMER" | "FEEDER" | "SHUNT" | "COUPLER" | "GENERATOR")`
	KV   Num     `"," "kv" "=" @Number`
	Bus  string  `"," "bus" "=" @Ident`
	Ext  *MapLit `( "," @@ )?`
}

// AddBreaker declares a circuit breaker with its interrupting rating.
type AddBreaker struct {
	Pos lexer.Position

	ID             string  `"ADD_BREAKER" "id" "=" @Ident`
	KV             Num     `"," "kv" "=" @Number`
	InterruptingKA Num     `"," "interrupting_kA" "=" @Number`
	Type           string  `"," "type" "=" @("SF6" | "VACUUM" | "OIL" | "AIRBLAST")`
	ContinuousA    Num     `"," "continuous_A" "=" @Number`
	Ext            *MapLit `( "," @@ )?`
}

// AddDisconnector declares an isolating switch.
type AddDisconnector struct {
	Pos lexer.Position

	ID          string  `"ADD_DISCONNECTOR" "id" "=" @Ident`
	KV          Num     `"," "kv" "=" @Number`
	Type        string  `"," "type" "=" @("CENTER_BREAK" | "DOUBLE_BREAK" | "PANTOGRAPH" | "EARTH_SWITCH_COMBINED")`
	ContinuousA Num     `"," "continuous_A" "=" @Number`
	Ext         *MapLit `( "," @@ )?`
}

// AddCoupler declares a bus coupler joining two buses.
type AddCoupler struct {
	Pos lexer.Position

	ID      string  `"ADD_COUPLER" "id" "=" @Ident`
	KV      Num     `"," "kv" "=" @Number`
	FromBus string  `"," "from_bus" "=" @Ident`
	ToBus   string  `"," "to_bus" "=" @Ident`
	Ext     *MapLit `( "," @@ )?`
}

// TapBlock is the optional on-load tap changer description of a transformer.
type TapBlock struct {
	Open string `@"{"`

	Side           string `"side" "=" @("HV" | "LV" | "TV")`
	RangePct       Num    `"," "range_pct" "=" @Number`
	Steps          Num    `"," "steps" "=" @Number`
	RegulationMode string `( "," "regulation_mode" "=" @Ident )? "}"`
}

// AddTransformer declares a power transformer and its optional tap changer.
type AddTransformer struct {
	Pos lexer.Position

	ID          string    `"ADD_TRANSFORMER" "id" "=" @Ident`
	Type        string    `"," "type" "=" @("TWO_WINDING" | "AUTO" | "THREE_WINDING" | "GROUNDING")`
	RatedMVA    Num       `"," "rated_MVA" "=" @Number`
	VectorGroup Text      `"," "vector_group" "=" @String`
	PercentZ    Num       `"," "percentZ" "=" @Number`
	Tap         *TapBlock `( "," "tap" "=" @@ )?`
	Ext         *MapLit   `( "," @@ )?`
}

// SeqParams holds per-kilometre sequence impedances of a line or cable.
// Positive-sequence resistance and reactance are required; the rest are not.
type SeqParams struct {
	Open string `@"{"`

	R1 Num `"R1_ohm_per_km" "=" @Number`
	X1 Num `"," "X1_ohm_per_km" "=" @Number`
	B1 Num `( "," "B1_uS_per_km" "=" @Number )?`
	R0 Num `( "," "R0_ohm_per_km" "=" @Number )?`
	X0 Num `( "," "X0_ohm_per_km" "=" @Number )?`
	B0 Num `( "," "B0_uS_per_km" "=" @Number )? "}"`
}

// AddLine declares an overhead line or underground cable circuit.
type AddLine struct {
	Pos lexer.Position

	ID        string     `"ADD_LINE" "id" "=" @Ident`
	KV        Num        `"," "kv" "=" @Number`
	Type      string     `"," "type" "=" @("OHL" | "UGC")`
	LengthKm  Num        `"," "length_km" "=" @Number`
	ThermalA  Num        `"," "thermal_A" "=" @Number`
	SeqParams *SeqParams `( "," "seq_params" "=" @@ )?`
	Ext       *MapLit    `( "," @@ )?`
}

// AddCable declares a cable section.
type AddCable struct {
	Pos lexer.Position

	ID         string     `"ADD_CABLE" "id" "=" @Ident`
	KV         Num        `"," "kv" "=" @Number`
	LengthKm   Num        `"," "length_km" "=" @Number`
	ThermalA   Num        `"," "thermal_A" "=" @Number`
	Insulation *Scalar    `"," "insulation" "=" @@`
	SeqParams  *SeqParams `( "," "seq_params" "=" @@ )?`
	Ext        *MapLit    `( "," @@ )?`
}

// AddEarthingSwitch declares an earthing switch.
type AddEarthingSwitch struct {
	Pos lexer.Position

	ID     string  `"ADD_EARTHING_SWITCH" "id" "=" @Ident`
	KV     Num     `"," "kv" "=" @Number`
	MakeKA Num     `"," "make_kA" "=" @Number`
	Ext    *MapLit `( "," @@ )?`
}

// AddCT declares a current transformer.
type AddCT struct {
	Pos lexer.Position

	ID       string  `"ADD_CT" "id" "=" @Ident`
	KV       Num     `"," "kv" "=" @Number`
	Ratio    *Scalar `"," "ratio" "=" @@`
	Class    *Scalar `"," "class" "=" @@`
	BurdenVA Num     `( "," "burden_VA" "=" @Number )?`
	Ext      *MapLit `( "," @@ )?`
}

// AddVT declares a voltage transformer.
type AddVT struct {
	Pos lexer.Position

	ID    string  `"ADD_VT" "id" "=" @Ident`
	KV    Num     `"," "kv" "=" @Number`
	Type  string  `"," "type" "=" @("MAGNETIC" | "CAPACITIVE")`
	Ratio *Scalar `"," "ratio" "=" @@`
	Class *Scalar `"," "class" "=" @@`
	Ext   *MapLit `( "," @@ )?`
}

// AddRelayGroup declares a set of protection functions.
type AddRelayGroup struct {
	Pos lexer.Position

	ID          string     `"ADD_RELAY_GROUP" "id" "=" @Ident`
	Functions   *IdentList `"," "functions" "=" @@`
	DCSupply    string     `"," "dc_supply" "=" @Ident`
	TripObjects *IdentList `( "," "trip_objects" "=" @@ )?`
	Ext         *MapLit    `( "," @@ )?`
}

// Tuning is the optional harmonic filter tuning of a capacitor bank.
type Tuning struct {
	Open string `@"{"`

	TunedHz Num `"tuned_Hz" "=" @Number`
	QFactor Num `"," "Q_factor" "=" @Number "}"`
}

// AddShuntCapBank declares a shunt capacitor bank.
type AddShuntCapBank struct {
	Pos lexer.Position

	ID         string  `"ADD_SHUNT_CAP_BANK" "id" "=" @Ident`
	KV         Num     `"," "kv" "=" @Number`
	MvarTotal  Num     `"," "mvar_total" "=" @Number`
	Steps      Num     `"," "steps" "=" @Number`
	Connection string  `"," "connection" "=" @Ident`
	Tuning     *Tuning `( "," "tuning" "=" @@ )?`
	Ext        *MapLit `( "," @@ )?`
}

// AddShuntReactor declares a shunt reactor.
type AddShuntReactor struct {
	Pos lexer.Position

	ID         string  `"ADD_SHUNT_REACTOR" "id" "=" @Ident`
	KV         Num     `"," "kv" "=" @Number`
	Mvar       Num     `"," "mvar" "=" @Number`
	Switchable Boolean `"," "switchable" "=" @("true" | "false")`
	Ext        *MapLit `( "," @@ )?`
}

// AddSeriesCap declares a series capacitor.
type AddSeriesCap struct {
	Pos lexer.Position

	ID              string  `"ADD_SERIES_CAP" "id" "=" @Ident`
	KV              Num     `"," "kv" "=" @Number`
	CompensationPct Num     `"," "compensation_pct" "=" @Number`
	Protection      *Scalar `"," "protection" "=" @@`
	Ext             *MapLit `( "," @@ )?`
}

// AddSVC declares a static var compensator.
type AddSVC struct {
	Pos lexer.Position

	ID          string  `"ADD_SVC" "id" "=" @Ident`
	KV          Num     `"," "kv" "=" @Number`
	MvarRange   *Range  `"," "mvar_range" "=" @@`
	ControlMode string  `"," "control_mode" "=" @Ident`
	ResponseMs  Num     `( "," "response_ms" "=" @Number )?`
	Ext         *MapLit `( "," @@ )?`
}

// AddSTATCOM declares a static synchronous compensator.
type AddSTATCOM struct {
	Pos lexer.Position

	ID          string  `"ADD_STATCOM" "id" "=" @Ident`
	KV          Num     `"," "kv" "=" @Number`
	MvarRange   *Range  `"," "mvar_range" "=" @@`
	ControlMode string  `"," "control_mode" "=" @Ident`
	ResponseMs  Num     `( "," "response_ms" "=" @Number )?`
	Ext         *MapLit `( "," @@ )?`
}

// AddSurgeArrester declares a surge arrester.
type AddSurgeArrester struct {
	Pos lexer.Position

	ID     string  `"ADD_SURGE_ARRESTER" "id" "=" @Ident`
	KV     Num     `"," "kv" "=" @Number`
	McovKV Num     `"," "mcov_kV" "=" @Number`
	Class  *Scalar `"," "class" "=" @@`
	Ext    *MapLit `( "," @@ )?`
}

// AddLineTrap declares a line trap for power line carrier.
type AddLineTrap struct {
	Pos lexer.Position

	ID         string  `"ADD_LINE_TRAP" "id" "=" @Ident`
	KV         Num     `"," "kv" "=" @Number`
	CarrierKHz Num     `"," "carrier_kHz" "=" @Number`
	Ext        *MapLit `( "," @@ )?`
}

// AddStationServiceTransformer declares an auxiliary supply transformer.
type AddStationServiceTransformer struct {
	Pos lexer.Position

	ID          string  `"ADD_STATION_SERVICE_TRANSFORMER" "id" "=" @Ident`
	PrimaryKV   Num     `"," "primary_kv" "=" @Number`
	SecondaryKV Num     `"," "secondary_kV" "=" @Number`
	KVA         Num     `"," "kVA" "=" @Number`
	Ext         *MapLit `( "," @@ )?`
}

// AddDCSystem declares a station battery and charger system.
type AddDCSystem struct {
	Pos lexer.Position

	ID         string  `"ADD_DC_SYSTEM" "id" "=" @Ident`
	NominalV   Num     `"," "nominal_V" "=" @Number`
	CapacityAh Num     `"," "capacity_Ah" "=" @Number`
	Redundancy *Scalar `"," "redundancy" "=" @@`
	Ext        *MapLit `( "," @@ )?`
}

// Connect declares a series chain. The keyword is captured so that an empty
// series still yields a node.
type Connect struct {
	Pos lexer.Position

	Keyword  string          `@"CONNECT"`
	Elements []*ChainElement `"series" "=" "[" ( @@ ( "," @@ )* )? "]"`
	Ext      *MapLit         `( "," @@ )?`
}

// AppendToBay adds an object to a bay.
type AppendToBay struct {
	Pos lexer.Position

	BayID    string `"APPEND_TO_BAY" "bay_id" "=" @Ident`
	ObjectID string `"," "object_id" "=" @Ident`
}

// Routing holds the optional drawing preferences of a page.
type Routing struct {
	Open string `@"{"`

	Pref          string  `"pref" "=" @Ident`
	AvoidCrossing Boolean `( "," "avoid_crossing" "=" @("true" | "false") )?`
	BusSpacing    Num     `( "," "bus_spacing" "=" @Number )?`
	BaySpacing    Num     `( "," "bay_spacing" "=" @Number )? "}"`
}

// Page declares a drawing page.
type Page struct {
	Pos lexer.Position

	ID           string     `"PAGE" "id" "=" @Ident`
	Title        Text       `"," "title" "=" @String`
	VoltageScope *NumList   `"," "voltage_scope" "=" @@`
	Buses        *IdentList `"," "buses" "=" @@`
	Bays         *IdentList `"," "bays" "=" @@`
	Routing      *Routing   `( "," "routing" "=" @@ )?`
	Ext          *MapLit    `( "," @@ )?`
}

// Style sets drawing style entries.
type Style struct {
	Pos lexer.Position

	Keyword string   `@"STYLE"`
	Entries []*Entry `@@ ( "," @@ )*`
}

// SetLayout sets layout entries.
type SetLayout struct {
	Pos lexer.Position

	Keyword string   `@"SET_LAYOUT"`
	Entries []*Entry `@@ ( "," @@ )*`
}

// Label attaches display attributes to an object.
type Label struct {
	Pos lexer.Position

	Target  string   `"LABEL" "target" "=" @Ident`
	Entries []*Entry `( "," @@ )*`
}

// Validate asks the tool to run the validator.
type Validate struct {
	Pos lexer.Position

	Keyword string `@"VALIDATE"`
}

// EmitSpec asks for a downstream specification export.
type EmitSpec struct {
	Pos lexer.Position

	Keyword string   `@"EMIT_SPEC"`
	Entries []*Entry `( @@ ( "," @@ )* )?`
}
