package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drfoodie/nutritrack/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountId"`
}

type snapshotResponse struct {
	Profile json.RawMessage   `json:"profile"`
	Meals   []json.RawMessage `json:"meals"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, accountID, err := s.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		case errors.Is(err, common.ErrorInvalidLoginPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		default:
			s.logger.Error(c.Request.Context(), "register failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: token, AccountID: accountID})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, accountID, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidLoginPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: token, AccountID: accountID})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snap, err := s.snapshots.Get(c.Request.Context(), accountID(c))
	if err != nil {
		s.logger.Error(c.Request.Context(), "snapshot failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := snapshotResponse{Profile: snap.Profile, Meals: snap.Meals}
	if resp.Meals == nil {
		resp.Meals = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePushProfile(c *gin.Context) {
	doc, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if err := s.snapshots.MergeProfile(c.Request.Context(), accountID(c), doc); err != nil {
		s.logger.Error(c.Request.Context(), "profile push failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile document"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePushMeal(c *gin.Context) {
	doc, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if err := s.snapshots.UpsertMeal(c.Request.Context(), accountID(c), c.Param("id"), doc); err != nil {
		s.logger.Error(c.Request.Context(), "meal push failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal document"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteMeal(c *gin.Context) {
	if err := s.snapshots.DeleteMeal(c.Request.Context(), accountID(c), c.Param("id")); err != nil {
		s.logger.Error(c.Request.Context(), "meal delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleSignOut is deliberately a no-op beyond auth: tokens are stateless,
// the client discards its copy.
func (s *Server) handleSignOut(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
