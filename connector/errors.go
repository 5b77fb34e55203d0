// connector/errors.go
package connector

import "fmt"

// TokenAcquisitionError reports that the token exchange failed or returned nothing.
// It is returned by Connect, RefreshToken and GetToken's expired branch; the underlying
// exchange failure is available via Unwrap.
type TokenAcquisitionError struct {
	Err error
}

func (e *TokenAcquisitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token acquisition failed: %v", e.Err)
	}
	return "token acquisition failed"
}

func (e *TokenAcquisitionError) Unwrap() error {
	return e.Err
}
