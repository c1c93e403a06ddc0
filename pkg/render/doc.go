// Package render holds the contracts shared by the instructor pages: the Page
// interface transports dispatch on, the Region and StepRegion seams page
// chrome plugs into, a name-keyed page registry, and the rich-text sanitizer
// applied to instructor-authored descriptions.
package render
