package server

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// render executes a named template into the response. The current user, when
// resolvable, rides along for the navigation partials.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = s.currentUser(c)
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("template %s error: %v", name, err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}

// renderToBytes executes a template off the response path so the result can
// be cached and replayed verbatim.
func (s *Server) renderToBytes(name string, data gin.H) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) renderNotFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "not_found.html", gin.H{})
}

func (s *Server) renderServerError(c *gin.Context) {
	s.render(c, http.StatusInternalServerError, "error.html", gin.H{})
}
