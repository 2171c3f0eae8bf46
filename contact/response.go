package contact

import (
	"errors"
	"net/http"

	"portfolio-site/contact/domain"
	"portfolio-site/middleware/ratelimit"
)

const (
	msgSuccess   = "Contact form submitted successfully"
	msgThrottled = "Too many requests. Please try again later."
	msgInternal  = "Internal server error"
)

// Response é o resultado de uma submissão pronto para ir ao cliente.
type Response struct {
	Status int
	Body   any
	Header http.Header
}

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

func successResponse() Response {
	h := http.Header{}
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	return Response{
		Status: http.StatusOK,
		Body:   successBody{Success: true, Message: msgSuccess},
		Header: h,
	}
}

func internalResponse() Response {
	h := http.Header{}
	h.Set("X-Content-Type-Options", "nosniff")
	return Response{
		Status: http.StatusInternalServerError,
		Body:   errorBody{Error: msgInternal},
		Header: h,
	}
}

// errorResponse mapeia a taxonomia de erros. Qualquer erro fora dela vira 500.
func errorResponse(err error) Response {
	var terr *domain.ThrottleError
	if errors.As(err, &terr) {
		h := http.Header{}
		h.Set("Retry-After", ratelimit.RetryAfterSeconds(terr.RetryAfter))
		return Response{
			Status: http.StatusTooManyRequests,
			Body:   errorBody{Error: msgThrottled},
			Header: h,
		}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return Response{
			Status: http.StatusBadRequest,
			Body:   errorBody{Error: string(verr.Reason)},
			Header: http.Header{},
		}
	}

	return internalResponse()
}
