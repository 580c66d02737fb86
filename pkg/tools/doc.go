// Package tools holds the model-agnostic tool model: descriptors as reported
// by a tool session, the intermediate schema form they carry, and the
// read-only registry the orchestration layer works against.
//
// The Session interface is the only view this module has of the tool
// provider; pkg/mcp supplies the stdio implementation.
package tools
