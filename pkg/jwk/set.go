package jwk

// Set is a JSON Web Key Set (RFC 7517 §5), supplementing the core spec
// with the lookup an issuer or verifier needs when more than one key is in
// circulation.
type Set struct {
	Keys []*Jwk `json:"keys"`
}

// Find returns the key in the set whose kid matches, or nil if none does.
func (s *Set) Find(kid string) *Jwk {
	for _, k := range s.Keys {
		if k.Kid == kid {
			return k
		}
	}
	return nil
}
