/*
Package curves builds per-channel lookup tables that remap pixel
intensities, in the manner of Photoshop's Curves tool. A table is
defined by normalized (x, y) control points given explicitly, by a
built-in preset, or by a Photoshop ACV file, is interpolated with a
natural cubic spline, and can be composed with a master curve applied
on top of the color channels.

Tables are built once with Build and are immutable afterwards; applying
them to frames is a plain array lookup per sample and safe from any
number of goroutines.
*/
package curves
