package indexnow

type Results struct {
	Notified []string
	Findings []Finding
}

type Finding struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error"`
}
