/*
Package ports defines the driven ports (interfaces) for the story engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to read stories from several sources and to keep live sessions in
several backends.

# Key Interfaces

  - GraphLoader: Loads node definitions (YAML file, Loam directory, memory).
  - StartProvider: Optional; a loader that knows which node starts the story.
  - SessionStore: Keeps live reader sessions (memory, Redis).
  - DistributedLocker: Serializes access to a session across replicas.
  - StoryEngine: What the HTTP and MCP adapters need from the engine.
*/
package ports
