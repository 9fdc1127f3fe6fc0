// Package ports defines the interfaces (ports) that connect the lifecycle
// controller to its collaborators.
//
// The controller in internal/app depends only on these interfaces. Adapters in
// internal/adapters and internal/panel implement them.
//
// # Port Interfaces
//
//   - [EngineBinding]: lifecycle operations of the input engine
//   - [ConfigStore] and [Configuration]: the base presentation configuration
//   - [Panel]: the presentation surface
//   - [StatusRepository]: persisted controller status
//   - [TriggerSink]: serialized delivery of lifecycle triggers
//
// Logging is provided by github.com/bft-labs/rimed/pkg/log.
package ports
