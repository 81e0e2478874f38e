package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mhyeon/stepsuite/internal/constants"
)

// sampleRequest is the body shape the sample endpoint accepts. Items are
// echoed back inside the envelope so a suite can assert on its own data.
type sampleRequest struct {
	Items []any `json:"items"`
}

// New builds a gin engine exposing the endpoints a suite needs to exercise
// itself end to end without a real backend:
//
//	GET  /healthz                 readiness probe for the wait loop
//	POST /<prefix>/sample         echoes request items as {"resultData": [...]}
//	GET  /<prefix>/page           small HTML page for selector assertions
//
// The prefix mirrors the harness URI prefix so BuildURI output lines up.
func New(prefix string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group := r.Group("/" + strings.Trim(prefix, "/"))
	group.POST("/"+constants.SamplePathSegment, func(c *gin.Context) {
		var req sampleRequest
		// An empty or non-JSON body still yields a valid envelope.
		if err := c.ShouldBindJSON(&req); err != nil || req.Items == nil {
			c.JSON(http.StatusOK, gin.H{constants.ResultDataField: []any{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{constants.ResultDataField: req.Items})
	})
	group.GET("/page", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(samplePage))
	})

	return r
}

const samplePage = `<!DOCTYPE html>
<html>
<head><title>stepsuite sample page</title></head>
<body>
<div id="main">
  <h1 class="title">Sample</h1>
  <ul class="results">
    <li class="result-item">first</li>
    <li class="result-item">second</li>
  </ul>
</div>
</body>
</html>`
