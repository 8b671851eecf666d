package chatapi

// Kind clasifica el resultado de una request de chat.
type Kind int

const (
	KindSuccess Kind = iota
	KindHTTPError
	KindParseError
	KindNetworkError
)

// ErrorRawKey marca un body que no se pudo parsear como JSON.
const ErrorRawKey = "errorRaw"

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindHTTPError:
		return "http_error"
	case KindParseError:
		return "parse_error"
	case KindNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Result es el resultado de un Send. Data contiene el body decodificado
// (o {errorRaw: raw} cuando el body no es JSON).
type Result struct {
	Kind       Kind
	Data       any
	Raw        string
	Status     int
	StatusText string
	Err        error
}

// Success construye un resultado exitoso con el body ya decodificado.
func Success(data any) Result {
	return Result{Kind: KindSuccess, Data: data, Status: 200, StatusText: "OK"}
}

// HTTPFailure construye un resultado non-2xx.
func HTTPFailure(status int, statusText string, data any, raw string) Result {
	return Result{Kind: KindHTTPError, Status: status, StatusText: statusText, Data: data, Raw: raw}
}

// NetworkFailure construye un resultado sin respuesta del servidor.
func NetworkFailure(err error) Result {
	return Result{Kind: KindNetworkError, Err: err}
}
