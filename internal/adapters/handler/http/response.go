package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

// respondError maps core errors to status codes.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": verr.Field})
	case errors.Is(err, domain.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store is closed"})
	case errors.Is(err, domain.ErrRemote):
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "remote gateway call failed"})
	default:
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// spanQuery reads span, from and to. Custom spans need at least one bound.
func spanQuery(c *gin.Context) (window.Query, error) {
	q := window.Query{Span: window.ParseSpan(c.Query("span"))}
	if q.Span != window.SpanCustom {
		return q, nil
	}

	if s := c.Query("from"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return q, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		q.From = d
	}
	if s := c.Query("to"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return q, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		q.To = d
	}
	if q.From.IsZero() && q.To.IsZero() {
		return q, fmt.Errorf("custom span needs from or to")
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, fmt.Errorf("from cannot be after to")
	}
	return q, nil
}

// periodQuery reads span (default week) and offset.
func periodQuery(c *gin.Context) (window.Span, int, error) {
	span := window.SpanWeek
	if s := c.Query("span"); s != "" {
		span = window.ParseSpan(s)
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return span, 0, fmt.Errorf("invalid offset %q", s)
		}
		offset = n
	}
	return span, offset, nil
}

func listHandler[T any](list func() []T) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, list())
	}
}

func spanListHandler[T any](list func(window.Query) []T) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := spanQuery(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, list(q))
	}
}

func createHandler[In any, T any](create func(context.Context, In) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in In
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		item, err := create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateHandler[P any, T any](update func(string, P) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch P
		if err := c.ShouldBindJSON(&patch); err != nil {
			badRequest(c, err)
			return
		}
		item, err := update(c.Param("id"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func removeHandler(remove func(string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := remove(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
