// Package request holds request decoding helpers shared by handlers.
package request

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes the JSON body into dst. An empty body leaves dst at its zero value.
// Keys that dst does not declare are rejected, as is any content after the first value.
func BindJSON(c *gin.Context, dst any) error {
	if c.Request == nil || c.Request.Body == nil {
		return nil
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
