package apperror

import "fmt"

type AppError struct {
	Code       string // kode mesin, mis. INVALID_INPUT
	Message    string // pesan untuk client
	HTTPStatus int
	Details    any   // opsional, ikut ke field error.details di envelope
	Err        error // penyebab asli, tidak pernah dikirim ke client
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membuat salinan sentinel dengan penyebab asli terlampir.
// errors.Is terhadap sentinel tetap berhasil.
func (e *AppError) Wrap(cause error) *AppError {
	out := *e
	out.Err = &wrapped{sentinel: e, cause: cause}
	return &out
}

// WithDetails membuat salinan dengan details untuk client.
func (e *AppError) WithDetails(details any) *AppError {
	out := *e
	out.Details = details
	if out.Err == nil {
		out.Err = &wrapped{sentinel: e}
	}
	return &out
}

type wrapped struct {
	sentinel *AppError
	cause    error
}

func (w *wrapped) Error() string {
	if w.cause == nil {
		return w.sentinel.Message
	}
	return w.cause.Error()
}

func (w *wrapped) Is(target error) bool {
	return target == w.sentinel
}

func (w *wrapped) Unwrap() error {
	return w.cause
}
