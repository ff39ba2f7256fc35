package domain

// PolicyInput is the document handed to the request policy before an
// identity-creation or signing operation runs.
type PolicyInput struct {
	Operation string `json:"operation"`
	Username  string `json:"username,omitempty"`
	Origin    string `json:"origin,omitempty"`
	TextBytes int    `json:"text_bytes,omitempty"`
}

type PolicyDeny struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type PolicyResult struct {
	Allow bool         `json:"allow"`
	Deny  []PolicyDeny `json:"deny,omitempty"`
}
