package handler

import (
	"net/http"
	"sync"

	"github.com/CageChen/entryhub/internal/config"
	"github.com/CageChen/entryhub/internal/entry"
	"github.com/CageChen/entryhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// folderResponse pairs a favourite folder with its resolved entry.
// Folders that no longer resolve carry the error instead.
type folderResponse struct {
	config.Folder
	Entry *entry.Entry `json:"entry,omitempty"`
	Error string       `json:"error,omitempty"`
}

// FolderHandler handles favourite folder API requests
type FolderHandler struct {
	mu       sync.Mutex
	cfg      *config.Config
	resolver *entry.Resolver
	logger   *zap.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(cfg *config.Config, resolver *entry.Resolver, logger *zap.Logger) *FolderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderHandler{cfg: cfg, resolver: resolver, logger: logger}
}

// Register mounts the folder routes on the given group
func (h *FolderHandler) Register(api gin.IRouter) {
	api.GET("/folders", h.GetFolders)
	api.POST("/folders", h.AddFolder)
	api.DELETE("/folders", h.RemoveFolder)
}

// GetFolders returns the configured folders, each with its current entry
func (h *FolderHandler) GetFolders(c *gin.Context) {
	h.mu.Lock()
	folders := append([]config.Folder(nil), h.cfg.Folders...)
	h.mu.Unlock()

	paths := make([]string, len(folders))
	for i, f := range folders {
		paths[i] = f.Path
	}

	results, err := h.resolver.ResolveAll(c.Request.Context(), paths)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]folderResponse, len(folders))
	for i, f := range folders {
		resp[i] = folderResponse{Folder: f}
		if results[i].OK() {
			e := results[i].Entry
			resp[i].Entry = &e
		} else {
			resp[i].Error = results[i].Err.Error()
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"folders": resp,
	})
}

// AddFolderRequest represents a request to add a folder
type AddFolderRequest struct {
	Path  string `json:"path" binding:"required"`
	Alias string `json:"alias"`
}

// AddFolder adds a new folder to the configuration
func (h *FolderHandler) AddFolder(c *gin.Context) {
	var req AddFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is required",
		})
		return
	}

	// The folder must currently resolve to a directory
	e, err := h.resolver.Get(c.Request.Context(), req.Path)
	if err != nil {
		respondError(c, err)
		return
	}
	if !e.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is not a directory",
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.cfg.AddFolder(req.Path, req.Alias); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := h.cfg.Save(); err != nil {
		h.logger.Error("failed to save config",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("path", h.cfg.GetConfigFilePath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to save config: " + err.Error(),
		})
		return
	}

	h.logger.Info("folder added", zap.String("request_id", middleware.RequestID(c)), zap.String("path", req.Path))
	c.JSON(http.StatusOK, gin.H{
		"message": "folder added",
		"folders": h.cfg.Folders,
	})
}

// RemoveFolderRequest represents a request to remove a folder (by index)
type RemoveFolderRequest struct {
	Index *int `json:"index" binding:"required"`
}

// RemoveFolder removes a folder from the configuration by index
func (h *FolderHandler) RemoveFolder(c *gin.Context) {
	var req RemoveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "index is required",
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	index := *req.Index
	if index < 0 || index >= len(h.cfg.Folders) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid folder index",
		})
		return
	}

	h.cfg.RemoveFolderByIndex(index)

	if err := h.cfg.Save(); err != nil {
		h.logger.Error("failed to save config",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("path", h.cfg.GetConfigFilePath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to save config: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "folder removed",
		"folders": h.cfg.Folders,
	})
}
