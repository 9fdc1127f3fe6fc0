// Package domain contains the value types of the rimed lifecycle.
//
// It has no dependencies on infrastructure concerns and holds only the
// vocabulary shared by the controller and its adapters.
//
// # Types
//
//   - [EngineState]: the engine lifecycle state and its legal transitions
//   - [Trigger]: the input alphabet of the lifecycle controller
//   - [AppearanceMode]: light or dark projection of the presentation config
//   - [Traits]: the immutable record handed to the engine at setup
//   - [SessionID]: identifier of an engine session
package domain
