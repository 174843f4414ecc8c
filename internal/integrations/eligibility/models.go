package eligibility

// Participant модель участника программы из EligibilityService
type Participant struct {
	IdentityRef string `json:"identity_ref"`
	DisplayName string `json:"display_name"`
	GroupTag    string `json:"group_tag"`
	Active      bool   `json:"active"`
}

// ErrorResponse модель ошибки от EligibilityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
