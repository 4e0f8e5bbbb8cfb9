package pesel

// ChecksumValidator is the default Validator: eleven digits whose last digit
// is the weighted checksum of the first ten.
type ChecksumValidator struct{}

var weights = [10]int{1, 3, 7, 9, 1, 3, 7, 9, 1, 3}

// IsValid reports whether the value is exactly eleven digits with a correct
// control digit.
func (ChecksumValidator) IsValid(p Pesel) bool {
	s := string(p)
	if len(s) != 11 {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * weights[i]
	}
	control := s[10]
	if control < '0' || control > '9' {
		return false
	}
	return (10-sum%10)%10 == int(control-'0')
}
