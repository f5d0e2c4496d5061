package sheet

// backdropFadeMargin is the distance above the bottom of the screen at
// which the backdrop has fully faded out.
const backdropFadeMargin = 100

// BackdropOpacity maps the panel's top row to a backdrop opacity by
// interpolating between (0 -> 1) and (screenHeight-100 -> 0). Rows past
// the far end clamp to 0; rows above 0 extrapolate above 1.
func BackdropOpacity(offsetY, screenHeight float64) float64 {
	end := screenHeight - backdropFadeMargin
	if end <= 0 {
		if offsetY <= 0 {
			return 1
		}
		return 0
	}
	if offsetY >= end {
		return 0
	}
	return 1 - offsetY/end
}
