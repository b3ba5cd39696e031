/*
Package domain contains the core models of the story engine.

It defines the story graph, the traversal session and the read-only views that
front-ends render. The package is kept pure and free of I/O or persistence, so
every adapter (console, HTTP, MCP, Redis) shares the same vocabulary.

# Key Entities

  - Node: A point in the story with its narrative text, an optional illustration
    reference and an ordered list of Choices.
  - Graph: An immutable set of Nodes keyed by ID, plus the start key.
  - Session: The traversal state of one reader (current node, visited texts, trail).
  - View: What a front-end renders for the current node.
  - ValidationIssue: A structural defect reported by Graph.Validate.
*/
package domain
