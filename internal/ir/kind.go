// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import "fmt"

// Kind is the equipment category of an Object.
type Kind uint8

const (
	KindUnknown Kind = iota
	Bus
	Bay
	Breaker
	Disconnector
	Coupler
	Transformer
	Line
	Cable
	EarthingSwitch
	CT
	VT
	RelayGroup
	ShuntCapBank
	ShuntReactor
	SeriesCap
	SVC
	STATCOM
	SurgeArrester
	LineTrap
	StationServiceTransformer
	DCSystem
)

var kindNames = [...]string{
	KindUnknown:               "UNKNOWN",
	Bus:                       "BUS",
	Bay:                       "BAY",
	Breaker:                   "BREAKER",
	Disconnector:              "DISCONNECTOR",
	Coupler:                   "COUPLER",
	Transformer:               "TRANSFORMER",
	Line:                      "LINE",
	Cable:                     "CABLE",
	EarthingSwitch:            "EARTHING_SWITCH",
	CT:                        "CT",
	VT:                        "VT",
	RelayGroup:                "RELAY_GROUP",
	ShuntCapBank:              "SHUNT_CAP_BANK",
	ShuntReactor:              "SHUNT_REACTOR",
	SeriesCap:                 "SERIES_CAP",
	SVC:                       "SVC",
	STATCOM:                   "STATCOM",
	SurgeArrester:             "SURGE_ARRESTER",
	LineTrap:                  "LINE_TRAP",
	StationServiceTransformer: "STATION_SERVICE_TRANSFORMER",
	DCSystem:                  "DC_SYSTEM",
}

// Kinds lists every declarable equipment kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := Bus; int(k) < len(kindNames); k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a DSL kind name such as "SHUNT_REACTOR" to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if i > 0 && n == name {
			return Kind(i), nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown object kind %q", name)
}
