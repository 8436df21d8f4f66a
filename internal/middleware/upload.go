package middleware

import (
	"fmt"
	"net/http"

	"rentdesk/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

const uploadsKey = "uploads"

// Uploads groups the URLs produced by CloudUpload by resource kind.
type Uploads struct {
	Images    []string
	Videos    []string
	Documents []string
}

// All returns every uploaded URL, images first.
func (u Uploads) All() []string {
	out := make([]string, 0, len(u.Images)+len(u.Videos)+len(u.Documents))
	out = append(out, u.Images...)
	out = append(out, u.Videos...)
	return append(out, u.Documents...)
}

// CloudUpload parses the multipart field, pushes each file to Cloudinary
// under folder and stores the resulting Uploads in the context. A request
// without files passes through with empty Uploads. max <= 0 means no limit.
func CloudUpload(cloud cloudinary.Client, folder, field string, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var out Uploads
		form, err := c.MultipartForm()
		if err != nil || form == nil || len(form.File[field]) == 0 {
			c.Set(uploadsKey, out)
			c.Next()
			return
		}
		files := form.File[field]
		if max > 0 && len(files) > max {
			c.AbortWithStatusJSON(http.StatusBadRequest, fmt.Sprintf("%q must contain less than or equal to %d items", field, max))
			return
		}
		if cloud == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "file uploads are not configured"})
			return
		}
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "could not read " + fh.Filename})
				return
			}
			kind := cloudinary.ResourceTypeFor(fh.Header.Get("Content-Type"))
			res, err := cloud.Upload(c.Request.Context(), f, folder, kind)
			f.Close()
			if err != nil {
				LoggerFrom(c).Error().Err(err).Str("file", fh.Filename).Msg("cloudinary upload")
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
				return
			}
			switch kind {
			case cloudinary.ResourceImage:
				out.Images = append(out.Images, res.URL)
			case cloudinary.ResourceVideo:
				out.Videos = append(out.Videos, res.URL)
			default:
				out.Documents = append(out.Documents, res.URL)
			}
		}
		c.Set(uploadsKey, out)
		c.Next()
	}
}

// GetUploads returns what CloudUpload stored for the request.
func GetUploads(c *gin.Context) Uploads {
	if v, ok := c.Get(uploadsKey); ok {
		if u, ok := v.(Uploads); ok {
			return u
		}
	}
	return Uploads{}
}
