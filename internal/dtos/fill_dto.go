package dtos

// GoogleUser is the identity payload forwarded by the extension after a
// Google sign-in.
type GoogleUser struct {
	Email   string `json:"email" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Picture string `json:"picture"`
}

// FormField describes one input element on the page to be filled. Every
// attribute is optional; the extension sends whatever the DOM exposes.
type FormField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	Type        string `json:"type"`
	Label       string `json:"label"`
}

// FillRequest is the body of POST /fill.
type FillRequest struct {
	User   GoogleUser  `json:"user" binding:"required"`
	Fields []FormField `json:"fields" binding:"required"`

	// Variant selects the profile variant; empty means the configured
	// default ("Placement").
	Variant string `json:"variant"`
}

// FieldValue is one fill result, paired to an input field by id/name.
type FieldValue struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}
