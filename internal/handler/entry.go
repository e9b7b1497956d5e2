// Package handler provides HTTP handlers for the entryhub REST API.
package handler

import (
	"net/http"

	"github.com/CageChen/entryhub/internal/entry"
	"github.com/gin-gonic/gin"
)

// PathsRequest is the body of batch requests
type PathsRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

// ResultResponse reports the outcome of one path in a detailed batch
type ResultResponse struct {
	Path  string       `json:"path"`
	Entry *entry.Entry `json:"entry,omitempty"`
	Error string       `json:"error,omitempty"`
	Kind  string       `json:"kind"`
}

// EntryHandler handles entry resolution API requests
type EntryHandler struct {
	resolver *entry.Resolver
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(resolver *entry.Resolver) *EntryHandler {
	return &EntryHandler{resolver: resolver}
}

// Register mounts the entry routes on the given group
func (h *EntryHandler) Register(api gin.IRouter) {
	api.GET("/entry", h.GetEntry)
	api.GET("/entries", h.GetEntries)
	api.POST("/entries", h.GetEntriesForPaths)
	api.POST("/resolve", h.ResolvePaths)
	api.GET("/parent", h.GetParentEntry)
	api.GET("/hierarchy", h.GetHierarchy)
}

// GetEntry returns the entry for a single path
func (h *EntryHandler) GetEntry(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}

	e, err := h.resolver.Get(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GetEntriesForPaths returns entries for every path that resolved, in request order
func (h *EntryHandler) GetEntriesForPaths(c *gin.Context) {
	var req PathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "paths is required",
		})
		return
	}

	entries, err := h.resolver.GetForPaths(c.Request.Context(), req.Paths)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ResolvePaths reports one result per requested path, failures included
func (h *EntryHandler) ResolvePaths(c *gin.Context) {
	var req PathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "paths is required",
		})
		return
	}

	results, err := h.resolver.ResolveAll(c.Request.Context(), req.Paths)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ResultResponse, len(results))
	for i, res := range results {
		resp[i] = ResultResponse{Path: res.Path, Kind: entry.Kind(res.Err)}
		if res.OK() {
			e := res.Entry
			resp[i].Entry = &e
		} else {
			resp[i].Error = res.Err.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetEntries returns the entries of a directory's immediate children
func (h *EntryHandler) GetEntries(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}

	entries, err := h.resolver.List(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetParentEntry returns the entry of a path's parent directory
func (h *EntryHandler) GetParentEntry(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}

	e, err := h.resolver.GetParent(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GetHierarchy returns the root with the directories leading to path expanded
func (h *EntryHandler) GetHierarchy(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}

	root, err := h.resolver.Hierarchy(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, root)
}

func requirePath(c *gin.Context) (string, bool) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is required",
		})
		return "", false
	}
	return path, true
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"kind":  entry.Kind(err),
	})
}

// statusFor maps a resolution error to an HTTP status
func statusFor(err error) int {
	switch entry.Kind(err) {
	case "not_found", "parent_not_found":
		return http.StatusNotFound
	case "permission":
		return http.StatusForbidden
	case "canceled":
		return http.StatusRequestTimeout
	default:
		return http.StatusBadRequest
	}
}
