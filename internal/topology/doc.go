// Package topology derives connectivity information from a substation IR.
//
// # Chain Graph
//
// CONNECT chains describe series paths through equipment. Joining every pair
// of neighbouring references gives an undirected graph whose connected
// components are the electrically connected islands of the station (ignoring
// switch states, which the DSL does not model). Transformers and couplers are
// ordinary nodes, so an island can span several voltage levels.
//
// # Summary
//
// Summarize condenses an IR into the figures an operator asks for first:
// object and chain counts, voltage levels, an inventory per kind, a sample of
// the main equipment, and the island structure including objects that no
// chain references.
//
// Nothing in this package modifies the IR.
package topology
