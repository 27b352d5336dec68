// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Flattening, compositing and manifest rendering live here too; they are
// pure functions over domain types. Services are pure Go with no CGO;
// compositing uses golang.org/x/image/draw.
package services
