package sell

import "strings"

// Validation messages, shown to the user as-is.
const (
	MsgTitle       = "Please add title"
	MsgDescription = "Please add description"
	MsgAddress     = "Please add address or location"
	MsgImage       = "Please upload a file"
	MsgName        = "Please add your name"
	MsgPrice       = "Please provide a price"
	MsgVehicle     = "Please complete all vehicle details"
)

// ValidationErrors lists every rule a draft violates, in check order.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "\n")
}

// Validate checks every required field of d. Vehicle details are only
// required when vehicle is true. All violations are returned together; nil
// means the draft can be submitted.
func Validate(d Draft, vehicle bool) error {
	var errs ValidationErrors

	if blank(d.Title) {
		errs = append(errs, MsgTitle)
	}
	if blank(d.Description) {
		errs = append(errs, MsgDescription)
	}
	if blank(d.ChosenAddress()) {
		errs = append(errs, MsgAddress)
	}
	if len(d.ImageRefs()) == 0 {
		errs = append(errs, MsgImage)
	}
	if blank(d.Name) {
		errs = append(errs, MsgName)
	}
	if blank(d.Price) {
		errs = append(errs, MsgPrice)
	}
	if vehicle && !d.Vehicle.IsComplete() {
		errs = append(errs, MsgVehicle)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
