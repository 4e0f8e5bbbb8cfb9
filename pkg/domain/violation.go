package domain

// Violation classifies why a single request field was rejected.
type Violation string

const (
	ViolationIsBlank         Violation = "IS_BLANK"
	ViolationNotUnique       Violation = "NOT_UNIQUE"
	ViolationInvalidValue    Violation = "INVALID_VALUE"
	ViolationTooYoung        Violation = "TOO_YOUNG"
	ViolationIsUnsupported   Violation = "IS_UNSUPPORTED"
	ViolationIsNegative      Violation = "IS_NEGATIVE"
	ViolationIsNotRegistered Violation = "IS_NOT_REGISTERED"
)

// ConstraintViolation is the single failure a validation pipeline reports:
// the first rule that failed, in declared order, and nothing after it.
type ConstraintViolation struct {
	Subject   string    `json:"subject"`
	Violation Violation `json:"violation"`
}
