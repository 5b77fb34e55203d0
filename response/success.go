// response/success.go
/* Responsible for handling successful token-endpoint responses. It reads the response
body and unmarshals it based on the content type (JSON or XML). */
package response

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"go.uber.org/zap"
)

// contentHandler defines the signature for unmarshaling content from an io.Reader.
type contentHandler func(io.Reader, any) error

// responseUnmarshallers maps MIME types to the corresponding contentHandler functions.
var responseUnmarshallers = map[string]contentHandler{
	"application/json": handlerUnmarshalJSON,
	"application/xml":  handlerUnmarshalXML,
	"text/xml":         handlerUnmarshalXML,
}

// HandleAPISuccessResponse unmarshals a 2xx response body into out based on the
// Content-Type header.
func HandleAPISuccessResponse(resp *http.Response, out any, log logger.Logger) error {
	contentType := resp.Header.Get("Content-Type")
	mimeType, _ := parseHeader(contentType)

	handler, ok := responseUnmarshallers[mimeType]
	if !ok {
		return log.Error("Unexpected MIME type in token endpoint response", zap.String("ContentType", contentType))
	}

	if err := handler(resp.Body, out); err != nil {
		log.Warn("Failed to unmarshal token endpoint response", zap.String("ContentType", contentType), zap.Error(err))
		return fmt.Errorf("failed to unmarshal %s response: %w", mimeType, err)
	}

	log.Debug("Successfully unmarshalled token endpoint response", zap.String("ContentType", contentType))
	return nil
}

// handlerUnmarshalJSON unmarshals JSON content from an io.Reader into the provided output structure.
func handlerUnmarshalJSON(reader io.Reader, out any) error {
	return json.NewDecoder(reader).Decode(out)
}

// handlerUnmarshalXML unmarshals XML content from an io.Reader into the provided output structure.
func handlerUnmarshalXML(reader io.Reader, out any) error {
	return xml.NewDecoder(reader).Decode(out)
}
