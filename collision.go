package main

// Box is an axis-aligned bounding box. X,Y is the top-left corner;
// Y grows downward, matching the canvas coordinates the client renders in.
type Box struct {
	X, Y float64
	W, H float64
}

func (b Box) Right() float64   { return b.X + b.W }
func (b Box) Bottom() float64  { return b.Y + b.H }
func (b Box) CenterX() float64 { return b.X + b.W/2 }
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// BoxesOverlap checks if two boxes intersect
func BoxesOverlap(a, b Box) bool {
	return a.X < b.Right() && a.Right() > b.X && a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Face identifies a side of a reference box.
type Face uint8

const (
	FaceNone Face = iota
	FaceTop
	FaceBottom
	FaceLeft
	FaceRight
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	}
	return "none"
}

// Side reports whether f is a left or right face.
func (f Face) Side() bool { return f == FaceLeft || f == FaceRight }

// HitFace returns the face of ref that moving is penetrating from, chosen
// along the axis with the smaller overlap. When the overlaps are equal the
// vertical axis wins, so a corner contact counts as landing rather than a
// side hit. Returns FaceNone if the boxes do not overlap.
func HitFace(ref, moving Box) Face {
	overlapX := min(ref.Right(), moving.Right()) - max(ref.X, moving.X)
	overlapY := min(ref.Bottom(), moving.Bottom()) - max(ref.Y, moving.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return FaceNone
	}
	if overlapY <= overlapX {
		if moving.CenterY() < ref.CenterY() {
			return FaceTop
		}
		return FaceBottom
	}
	if moving.CenterX() < ref.CenterX() {
		return FaceLeft
	}
	return FaceRight
}
