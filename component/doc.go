// Package component defines the core interfaces for lifecycle-managed
// infrastructure services in the pelatform toolkit.
//
// Components represent services that require initialization, startup,
// shutdown, and health monitoring. The storage and email packages expose
// Component wrappers so applications can manage them with the Registry.
//
// # Interfaces
//
//   - Component: Core lifecycle interface (Start/Stop/Health)
//   - Describable: Startup summary descriptions
package component
