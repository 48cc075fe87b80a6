package forwarder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the uniform outcome of a submission, whether it came from the
// backend or was synthesized locally.
type Result struct {
	StatusCode int
	// Body is a decoded JSON value; numbers are json.Number.
	Body any

	// raw is the backend's JSON text, kept so Pretty can preserve key order.
	raw []byte
}

// ErrorResult builds a locally synthesized {"error": message} result.
func ErrorResult(status int, message string) Result {
	return Result{StatusCode: status, Body: map[string]any{"error": message}}
}

// Pretty renders Body as indented JSON with Unicode and HTML characters
// left unescaped. Object keys keep the backend's order. Callers embedding
// it in HTML must escape it.
func (r Result) Pretty() string {
	if r.raw != nil {
		if out, err := indentOrdered(r.raw); err == nil {
			return out
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r.Body); err != nil {
		return fmt.Sprintf("%v", r.Body)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// Succeeded reports whether the status is in the 2xx range.
func (r Result) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

const indentUnit = "    "

// indentOrdered re-prints a single JSON document token by token, so member
// order and number text survive while escaped characters are normalized.
func indentOrdered(raw []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeValue(dec, &buf, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeValue(dec *json.Decoder, buf *bytes.Buffer, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return writeScalar(buf, tok)
	}

	closing := byte('}')
	if delim == '[' {
		closing = ']'
	}
	buf.WriteByte(byte(delim))

	n := 0
	for dec.More() {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n" + strings.Repeat(indentUnit, depth+1))

		if delim == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			if err := writeScalar(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
		}
		if err := writeValue(dec, buf, depth+1); err != nil {
			return err
		}
		n++
	}

	// Consume the closing delimiter.
	if _, err := dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		buf.WriteString("\n" + strings.Repeat(indentUnit, depth))
	}
	buf.WriteByte(closing)
	return nil
}

func writeScalar(buf *bytes.Buffer, tok json.Token) error {
	if num, ok := tok.(json.Number); ok {
		buf.WriteString(num.String())
		return nil
	}
	b, err := encodeJSON(tok)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
