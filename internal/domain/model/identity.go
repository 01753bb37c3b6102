package model

// ExternalIdentity is a verified claim extracted from a third-party identity assertion.
type ExternalIdentity struct {
	ExternalID string
	Email      string
	Name       string
}
