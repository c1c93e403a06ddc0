// Package model defines the render context shared by the instructor views:
// assignments, the assignment list the editor navigates, and the step
// positions of the editor flow. Catalog files (YAML or JSON) mirror the
// payload produced by the instructor compiler and are turned into PageData
// values that renderers consume without mutating.
package model
