package util

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func MessageResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// FailedResponse never exposes internal error details.
func FailedResponse(err error) Response {
	return Response{Success: false, Error: PublicMessage(err)}
}

// LoginResponse flattens token and user to the top level of the envelope.
type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
}
