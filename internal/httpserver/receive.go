package httpserver

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const receivePage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Received payload</title>
<style>
    body { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; margin: 24px; }
    pre { white-space: pre-wrap; word-break: break-word; }
    .wrap { max-width: 1000px; }
</style>
</head>
<body>
<div class="wrap">
<h1>Received payload</h1>
<pre>%s</pre>
</div>
</body>
</html>
`

// receiveExportHandler renders whatever JSON body it receives as an escaped,
// pretty-printed HTML page. Non-JSON bodies render escaped as-is.
func receiveExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body := string(raw)
		var data any
		if err := json.Unmarshal(raw, &data); err == nil {
			if pretty, err := json.MarshalIndent(data, "", "  "); err == nil {
				body = string(pretty)
			}
		}

		page := fmt.Sprintf(receivePage, html.EscapeString(body))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	}
}
