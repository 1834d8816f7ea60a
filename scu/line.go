package scu

// Sink receives interrupt source level changes.
type Sink interface {
	SetSourceLevel(source Source, level bool)
}

// Line is the interrupt output of a peripheral, bound to a fixed source.
// The zero Line is unconnected.
type Line struct {
	Sink   Sink
	Source Source
}

// Set drives the line to a level.
func (line Line) Set(level bool) {
	if line.Sink == nil {
		return
	}
	line.Sink.SetSourceLevel(line.Source, level)
}

// Assert is Set(true).
func (line Line) Assert() {
	line.Set(true)
}

// Clear is Set(false).
func (line Line) Clear() {
	line.Set(false)
}

// Line returns a peripheral interrupt handle for a source.
func (scu *Scu) Line(source Source) Line {
	return Line{Sink: scu, Source: source}
}
