package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/AlexTLDR/bringwhat/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// HandleClient serves the single-page client for every unmatched GET: a file
// from the static directory when it exists, otherwise index.html so client
// side routing works. Without a built client a placeholder page is rendered.
// Anything that is not a GET is a JSON 404.
func HandleClient(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		dir := s.GetConfig().StaticDir
		// Cleaning against "/" keeps the lookup inside dir.
		requested := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		if isFile(requested) {
			c.File(requested)
			return
		}

		if index := filepath.Join(dir, "index.html"); isFile(index) {
			c.File(index)
			return
		}

		templ.Handler(templates.Shell("BringWhat", "The client has not been built yet. Run the frontend build into "+dir+"."),
			templ.WithStatus(http.StatusOK)).ServeHTTP(c.Writer, c.Request)
	}
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
