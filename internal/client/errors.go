package client

// RemoteError reports a transport failure or a non-2xx response. StatusCode is
// zero when the request never reached the backend.
type RemoteError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that did not parse as the expected shape.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
