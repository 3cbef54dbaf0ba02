package apiclient

// Response is the envelope every endpoint answers with.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Paginated[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message,omitempty"`
}

func (r *Response[T]) value(status int) (T, error) {
	var zero T
	if !r.Success || r.Data == nil {
		return zero, rejected(status, r.Message, r.Error, r.Code)
	}
	return *r.Data, nil
}

func rejected(status int, message, errText, code string) *APIError {
	msg := message
	if msg == "" {
		msg = errText
	}
	if msg == "" {
		msg = "request was not successful"
	}
	if code == "" {
		code = CodeRejected
	}
	return &APIError{Message: msg, Code: code, Status: status}
}
