package animator

// EasingType selects the curve used to blend a turn from start to finish.
type EasingType int

const (
	// EasingSmoothstep accelerates out of the start and settles into the end.
	EasingSmoothstep EasingType = iota

	// EasingLinear turns at constant angular speed.
	EasingLinear

	// EasingOutCubic starts fast and decelerates into the end.
	EasingOutCubic
)

// Apply maps linear progress t in [0, 1] onto the eased progress.
//
// Parameters:
//   - t: linear progress, clamped to [0, 1]
//
// Returns:
//   - float32: eased progress in [0, 1]
func (e EasingType) Apply(t float32) float32 {
	t = min(max(t, 0), 1)
	switch e {
	case EasingLinear:
		return t
	case EasingOutCubic:
		u := 1 - t
		return 1 - u*u*u
	default:
		return t * t * (3 - 2*t)
	}
}

func (e EasingType) String() string {
	switch e {
	case EasingLinear:
		return "linear"
	case EasingOutCubic:
		return "out-cubic"
	default:
		return "smoothstep"
	}
}

// ParseEasing resolves a configured easing name, falling back to smoothstep.
func ParseEasing(name string) EasingType {
	switch name {
	case "linear":
		return EasingLinear
	case "out-cubic":
		return EasingOutCubic
	}
	return EasingSmoothstep
}
