// Package shapes holds small geometric value types wired into the JSON
// decode registry.
package shapes

import (
	"fmt"

	"cssb/jsonutil"
)

// Rectangle is a plain width by height box.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRectangle returns a rectangle with the given dimensions.
func NewRectangle(width, height float64) Rectangle {
	return Rectangle{Width: width, Height: height}
}

// Area multiplies the current field values on every call, nothing is
// cached.
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// JSONTag is the registry tag rectangles decode under.
const JSONTag = "rectangle"

// RegisterJSON registers rectangle decoding with reg under JSONTag. The
// decode function takes width and height, in that order.
func RegisterJSON(reg *jsonutil.Registry) error {
	return reg.Register(JSONTag, []string{"width", "height"}, func(args []any) (any, error) {
		width, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("rectangle width is not a number: %v", args[0])
		}
		height, ok := args[1].(float64)
		if !ok {
			return nil, fmt.Errorf("rectangle height is not a number: %v", args[1])
		}
		return NewRectangle(width, height), nil
	})
}
