package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

// Response is a fully read HTTP response.
// Cached GET entries hold a *Response; treat it as read-only.
type Response struct {
	Header     http.Header
	Status     string
	Body       []byte
	StatusCode int
}

// ResponseType selects how a response body is decoded.
type ResponseType uint8

const (
	// ResponseJSON decodes the body as JSON into the result type. Default.
	ResponseJSON ResponseType = iota
	// ResponseText returns the body as a string.
	ResponseText
	// ResponseBytes returns a copy of the raw body.
	ResponseBytes
	// ResponseYAML decodes the body as YAML into the result type.
	ResponseYAML
	// ResponseRaw returns the *Response itself.
	ResponseRaw
)

func (rt ResponseType) String() string {
	switch rt {
	case ResponseJSON:
		return "json"
	case ResponseText:
		return "text"
	case ResponseBytes:
		return "bytes"
	case ResponseYAML:
		return "yaml"
	case ResponseRaw:
		return "raw"
	default:
		return fmt.Sprintf("response_type(%d)", uint8(rt))
	}
}

// checkResponseType verifies that rt can produce a T.
func checkResponseType[T any](rt ResponseType) error {
	var zero T
	switch rt {
	case ResponseJSON, ResponseYAML:
		return nil
	case ResponseText:
		if _, ok := any(&zero).(*string); ok {
			return nil
		}
	case ResponseBytes:
		if _, ok := any(&zero).(*[]byte); ok {
			return nil
		}
	case ResponseRaw:
		if _, ok := any(&zero).(**Response); ok {
			return nil
		}
	default:
		return errors.Join(ErrInvalidResponseType, fmt.Errorf("unknown %s", rt))
	}
	return errors.Join(ErrInvalidResponseType, fmt.Errorf("%s cannot decode into %T", rt, zero))
}

// decode converts resp into T. rt must have passed checkResponseType[T].
func decode[T any](resp *Response, rt ResponseType) (T, error) {
	var out T

	switch rt {
	case ResponseText:
		*any(&out).(*string) = string(resp.Body)
	case ResponseBytes:
		*any(&out).(*[]byte) = bytes.Clone(resp.Body)
	case ResponseRaw:
		*any(&out).(**Response) = resp
	case ResponseYAML:
		if len(resp.Body) == 0 {
			return out, nil
		}
		if err := yaml.Unmarshal(resp.Body, &out); err != nil {
			return out, errors.Join(ErrDecodeFailed, err)
		}
	default:
		if len(bytes.TrimSpace(resp.Body)) == 0 {
			return out, nil
		}
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			return out, errors.Join(ErrDecodeFailed, err)
		}
	}

	return out, nil
}
