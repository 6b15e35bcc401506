package domain

// Service is a provider's service offering, managed through the resource
// client. ID is assigned by the backend on create.
type Service struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	VisitCharge float64 `json:"visitCharge"`
}

// ProfilePicture is the profile-image resource as the backend returns it.
type ProfilePicture struct {
	ProfileImage string `json:"profileImage"`
}
