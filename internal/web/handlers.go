package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/logging"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/spotify"
	"mood-tracker/internal/validation"
)

type addTaskRequest struct {
	Name     string `json:"name" form:"name"`
	Deadline string `json:"deadline" form:"deadline"`
}

// Web handlers

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, pageView{})
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		s.renderPage(c, http.StatusBadRequest, pageView{Error: "Could not read the form."})
		return
	}

	if _, err := s.board.AddTask(c.Request.Context(), req.Name, req.Deadline); err != nil {
		s.renderPage(c, statusFor(err), pageView{
			Error:        apperrors.GetUserMessage(err),
			FormName:     req.Name,
			FormDeadline: req.Deadline,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if index, err := strconv.Atoi(c.Param("index")); err == nil {
		if _, err := s.board.DeleteTask(c.Request.Context(), index); err != nil {
			s.renderPage(c, statusFor(err), pageView{Error: apperrors.GetUserMessage(err)})
			return
		}
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) renderPage(c *gin.Context, status int, page pageView) {
	snapshot, err := s.board.Snapshot(c.Request.Context())
	if err != nil {
		logError(err)
		c.String(statusFor(err), apperrors.GetUserMessage(err))
		return
	}

	page.stateView = newStateView(snapshot, s.layout)
	c.HTML(status, "index.html", page)
}

// API handlers

func (s *Server) handleAPIState(c *gin.Context) {
	snapshot, err := s.board.Snapshot(c.Request.Context())
	if err != nil {
		s.apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newStateView(snapshot, s.layout),
	})
}

func (s *Server) handleAPIAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid JSON body",
		})
		return
	}

	snapshot, err := s.board.AddTask(c.Request.Context(), req.Name, req.Deadline)
	if err != nil {
		s.apiError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newStateView(snapshot, s.layout),
	})
}

func (s *Server) handleAPIDeleteTask(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "index must be an integer",
		})
		return
	}

	snapshot, err := s.board.DeleteTask(c.Request.Context(), index)
	if err != nil {
		s.apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newStateView(snapshot, s.layout),
	})
}

// handleAPIMood classifies an arbitrary deadline against the current time.
// Without a deadline it reports the empty-board mood.
func (s *Server) handleAPIMood(c *gin.Context) {
	now := s.now()
	result := mood.Classify(nil, now)
	if raw := c.Query("deadline"); raw != "" {
		deadline, err := s.validator.ParseDeadline(raw)
		if err != nil {
			if ve, ok := err.(*validation.ValidationError); ok {
				err = ve.ToInvalidInput()
			}
			s.apiError(c, err)
			return
		}
		result = mood.Classify(&deadline, now)
	}

	key := mood.PlaylistKeyFor(result.Category)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"mood":         result,
		"playlist_key": key,
		"playlist_url": spotify.EmbedURL(key),
	})
}

func (s *Server) handleAPIPlaylist(c *gin.Context) {
	key := mood.PlaylistKeyForName(c.Query("mood"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    spotify.NewEmbed(key, ""),
	})
}

func (s *Server) apiError(c *gin.Context, err error) {
	logError(err)
	body := gin.H{
		"success": false,
		"error":   apperrors.GetUserMessage(err),
		"code":    apperrors.GetErrorCode(err),
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		if field, ok := appErr.GetContext("field"); ok {
			body["field"] = field
		}
	}
	c.JSON(statusFor(err), body)
}

func statusFor(err error) int {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case apperrors.ErrorTypeInvalidInput:
		return http.StatusUnprocessableEntity
	case apperrors.ErrorTypeIndexOutOfRange, apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeUpstream:
		return http.StatusBadGateway
	case apperrors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func logError(err error) {
	if apperrors.ShouldLogError(err) {
		logging.Warnf("request failed: %v", err)
	}
}
