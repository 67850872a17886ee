// Package planner handles the planning phase of an export.
//
// The planner turns a working set plus naming rules into a deterministic
// rename plan, and checks a plan against the destination directory before
// anything is written.
//
// Key responsibilities:
//   - Generate RenamePlan entries with 1-based sequential indices
//   - Render target names in one of four formats
//   - Detect collisions with files already present at the destination
//   - Stay side-effect free: planning and checking never write
package planner
