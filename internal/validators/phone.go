package validators

import "regexp"

// Uzbekistan numbers: 998, two-digit operator code, seven digits.
var phoneRe = regexp.MustCompile(`^998[0-9]{2}[0-9]{7}$`)

func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}
