// Package pages bundles the templates shared by the instructor assignment
// editor screens. Subpackages hold the page renderers (microscopy) and the
// default page chrome (chrome) that every screen is framed with.
package pages
