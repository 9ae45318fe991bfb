package token

// #region token-type

// Token is the 12-bit packed discrete state of an actor:
// category (bits 0-2), action (bits 3-5), stamina bucket (bits 6-7),
// zone (bits 8-11). The full domain is 4096 values.
type Token uint16

// Field widths and shifts for the packed layout.
const (
	categoryBits = 3
	actionBits   = 3
	staminaBits  = 2
	zoneBits     = 4

	actionShift  = categoryBits
	staminaShift = categoryBits + actionBits
	zoneShift    = categoryBits + actionBits + staminaBits

	categoryMask = 1<<categoryBits - 1
	actionMask   = 1<<actionBits - 1
	staminaMask  = 1<<staminaBits - 1
	zoneMask     = 1<<zoneBits - 1

	// Domain is the number of distinct token values.
	Domain = 1 << (categoryBits + actionBits + staminaBits + zoneBits)
)

// #endregion token-type

// #region encode

// Encode packs the four fields into a Token. Out-of-range inputs are
// truncated to their bit width rather than rejected, so enum growth past
// the allotted bits degrades into a valid neighboring state.
func Encode(category, action, staminaBucket, zone int) Token {
	return Token(category&categoryMask |
		(action&actionMask)<<actionShift |
		(staminaBucket&staminaMask)<<staminaShift |
		(zone&zoneMask)<<zoneShift)
}

// #endregion encode

// #region decode

// Decode unpacks a Token into its four fields. Exact inverse of Encode
// for in-range inputs.
func Decode(t Token) (category, action, staminaBucket, zone int) {
	category = int(t) & categoryMask
	action = int(t) >> actionShift & actionMask
	staminaBucket = int(t) >> staminaShift & staminaMask
	zone = int(t) >> zoneShift & zoneMask
	return
}

// #endregion decode

// #region field-accessors

// StaminaBucket returns the stamina bucket field of t.
func (t Token) StaminaBucket() int {
	return int(t) >> staminaShift & staminaMask
}

// Zone returns the zone field of t.
func (t Token) Zone() int {
	return int(t) >> zoneShift & zoneMask
}

// #endregion field-accessors
