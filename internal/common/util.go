package common

// WipeByteArray zeroes b in place. Used for passwords read from the terminal.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// AllKeys returns the credentials and pending record keys in one slice.
func AllKeys() []string {
	keys := make([]string, 0, len(CredentialKeys)+len(PendingKeys))
	keys = append(keys, CredentialKeys...)
	return append(keys, PendingKeys...)
}
