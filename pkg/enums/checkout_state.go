package enums

// CheckoutState tracks a checkout session. Editing accepts selection
// changes, Submitting has an in-flight payment call, Completed is terminal.
// A failed submission returns the session to Editing.
type CheckoutState string

const (
	CheckoutStateEditing    CheckoutState = "editing"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateCompleted  CheckoutState = "completed"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateEditing,
	CheckoutStateSubmitting,
	CheckoutStateCompleted,
}

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutState.
func (c CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == c {
			return true
		}
	}
	return false
}
