package web

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports"
	"github.com/kamal-hamza/metadesigner/internal/core/services"
)

// APIResponse is the envelope of every JSON endpoint
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// multipartImage adapts an uploaded file to ports.ImageSource
type multipartImage struct {
	header *multipart.FileHeader
}

func (m multipartImage) Name() string {
	return m.header.Filename
}

func (m multipartImage) Open() (io.ReadCloser, error) {
	return m.header.Open()
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "Designer Dataset Upload",
		"MaxImages": domain.MaxImages,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	var images []ports.ImageSource
	form, err := c.MultipartForm()
	switch {
	case err == nil:
		for _, field := range []string{"images", "images[]"} {
			for _, fh := range form.File[field] {
				images = append(images, multipartImage{header: fh})
			}
		}
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		// plain form posts carry a name but never files
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, APIResponse{
				Success: false,
				Message: "Upload is too large.",
			})
			return
		}
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Could not read the upload: " + err.Error(),
		})
		return
	}

	resp, err := s.deps.Register.Execute(c.Request.Context(), services.RegisterRequest{
		Name:   c.PostForm("name"),
		Images: images,
	})
	if err != nil {
		kind := domain.KindOf(err)
		s.logger.Info("upload rejected", "request_id", requestID(c), "kind", kind, "error", err)
		c.JSON(statusForKind(kind), APIResponse{
			Success: false,
			Message: domain.StatusMessage(err),
			Kind:    string(kind),
		})
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: resp.Message(),
		Data:    resp,
	})
}

func (s *Server) handleListDesigners(c *gin.Context) {
	resp, err := s.deps.List.Execute(c.Request.Context(), services.ListRequest{
		SortBy:  c.DefaultQuery("sort", "name"),
		Reverse: c.Query("reverse") == "true",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: domain.StatusMessage(err),
			Kind:    string(domain.KindOf(err)),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: gin.H{
			"designers": resp.Designers,
			"total":     resp.Total,
		},
	})
}

func (s *Server) handleGetDesigner(c *gin.Context) {
	hash := c.Param("hash")
	if !domain.IsValidHash(hash) {
		c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Message: "Unknown designer hash.",
		})
		return
	}

	dataset, err := s.deps.List.Get(c.Request.Context(), hash)
	if err != nil {
		status := http.StatusInternalServerError
		message := domain.StatusMessage(err)
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
			message = "Unknown designer hash."
		}
		c.JSON(status, APIResponse{
			Success: false,
			Message: message,
			Kind:    string(domain.KindOf(err)),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    dataset,
	})
}

func (s *Server) handleTrain(c *gin.Context) {
	message, err := s.deps.Train.Execute(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
	})
}

// statusForKind maps a registration error kind to an HTTP status
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindEmptyName, domain.KindNoImages, domain.KindTooManyImages:
		return http.StatusBadRequest
	case domain.KindDuplicateName:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
