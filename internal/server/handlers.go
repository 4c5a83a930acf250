package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pdf-rag/internal/models"
	"pdf-rag/internal/parser"
	"pdf-rag/internal/rag"
	"pdf-rag/internal/session"
)

const uploadField = "files"

var (
	errUploadTooLarge = errors.New("upload exceeds size limit")
	errBadUpload      = errors.New("malformed upload")
	errBadRequest     = errors.New("invalid request payload")
)

// pageView is the data rendered by templates/index.html.
type pageView struct {
	Session    session.Info
	Notice     string
	Warning    string
	Error      string
	Question   string
	Answer     *models.Answer
	AnswerHTML template.HTML
}

type askRequest struct {
	Question string `json:"question" form:"question"`
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.store.Len()})
}

func (s *Server) indexHandler(c *gin.Context) {
	s.renderPage(c, http.StatusOK, pageView{Session: currentSession(c).Info()})
}

func (s *Server) processFormHandler(c *gin.Context) {
	sess := currentSession(c)

	uploads, err := s.readUploads(c)
	if err == nil {
		_, err = sess.Process(c.Request.Context(), uploads)
	}
	view := pageView{Session: sess.Info()}
	if err != nil {
		view.Error = err.Error()
		s.renderPage(c, statusFor(err), view)
		return
	}
	view.Notice = models.ProcessCompleteNotice
	s.renderPage(c, http.StatusOK, view)
}

func (s *Server) askFormHandler(c *gin.Context) {
	sess := currentSession(c)

	var req askRequest
	if err := c.ShouldBind(&req); err != nil {
		s.renderPage(c, http.StatusBadRequest, pageView{
			Session: sess.Info(),
			Error:   fmt.Sprintf("%v: %v", errBadRequest, err),
		})
		return
	}

	view := pageView{Question: req.Question}
	answer, err := sess.Ask(c.Request.Context(), req.Question)
	view.Session = sess.Info()
	switch {
	case errors.Is(err, rag.ErrNoIndex):
		view.Warning = models.NoIndexWarning
		s.renderPage(c, statusFor(err), view)
		return
	case err != nil:
		view.Error = err.Error()
		s.renderPage(c, statusFor(err), view)
		return
	}
	view.Answer = answer
	view.AnswerHTML = s.renderMarkdown(answer.Text)
	s.renderPage(c, http.StatusOK, view)
}

func (s *Server) processAPIHandler(c *gin.Context) {
	sess := currentSession(c)

	uploads, err := s.readUploads(c)
	if err != nil {
		s.abortJSON(c, err)
		return
	}
	result, err := sess.Process(c.Request.Context(), uploads)
	if err != nil {
		s.abortJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": models.ProcessCompleteNotice,
		"result":  result,
		"session": sess.Info(),
	})
}

func (s *Server) askAPIHandler(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest.Error()})
		return
	}

	answer, err := currentSession(c).Ask(c.Request.Context(), req.Question)
	if err != nil {
		s.abortJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"answer":      answer,
		"page_notice": answer.PageNotice(),
	})
}

func (s *Server) sessionAPIHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Info())
}

// readUploads collects every file of the multipart "files" field.
func (s *Server) readUploads(c *gin.Context) ([]parser.Upload, error) {
	limit := s.cfg.MaxUploadMB << 20
	if limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: %d MB", errUploadTooLarge, s.cfg.MaxUploadMB)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, rag.ErrNoDocuments
		}
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}

	files := form.File[uploadField]
	if len(files) == 0 {
		return nil, rag.ErrNoDocuments
	}

	uploads := make([]parser.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errBadUpload, fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errBadUpload, fh.Filename, err)
		}
		uploads = append(uploads, parser.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

func (s *Server) renderPage(c *gin.Context, status int, view pageView) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(c.Writer, view); err != nil {
		log.Error().Err(err).Msg("Error rendering page")
		_ = c.Error(err)
	}
}

func (s *Server) abortJSON(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if errors.Is(err, rag.ErrNoIndex) {
		msg = models.NoIndexWarning
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
