// Package viewport maps between canvas space and image space.
//
// Canvas space has its origin at the top-left of the visible viewport; image
// space has its origin at the top-left pixel of the unscaled raster. A
// Transform is the affine map between the two:
//
//	canvas = Origin + image*Zoom
//	image  = (canvas - Origin) / Zoom
//
// Zoom is always kept inside [ZoomMin, ZoomMax]. Zooming is anchored: the
// image point under the pointer stays under the pointer. Panning is clamped
// so the scaled image can never be dragged entirely out of the viewport.
package viewport
