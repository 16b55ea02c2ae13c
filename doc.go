// Package watermark stamps a semi-transparent text watermark into a corner of
// a raster image.
//
// The text is measured with the first usable font from an ordered provider
// chain (system TrueType fonts, ending in a built-in bitmap face), placed with
// a fixed 10 pixel inset from the chosen corner, drawn in white at 70/255
// opacity on a transparent overlay and alpha-composited over a copy of the
// source. The result is flattened to opaque RGB. Everything happens in memory.
package watermark
