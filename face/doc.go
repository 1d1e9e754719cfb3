// Package face extracts oriented faces (outer ring + holes) from a set of
// closed polylines: self-intersection check, ray-casting
// containment, depth/parent computation, and CCW/CW orientation
// assignment by depth parity.
package face
