package model

// SecretRef is an opaque reference to an externally managed secret (a
// name or ARN-like handle, never the secret value itself). The core
// passes it through to producer outputs unexamined. It must not appear
// in Describe() output or in logs; the logger configuration installs a
// masq filter keyed on this type.
type SecretRef string

// IsZero reports whether the reference is empty.
func (s SecretRef) IsZero() bool {
	return s == ""
}
