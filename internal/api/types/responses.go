package types

// MessageResponse is the body of every non-record response.
type MessageResponse struct {
	Msg string `json:"msg"`
}

type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type SitemapResponse struct {
	Endpoints []Endpoint `json:"endpoints"`
}
