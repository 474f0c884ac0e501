package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
)

func (s *Server) CreateAttributeDefinition(c *gin.Context) {
	var req attributedomain.AttributeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attrSvc.CreateDefinition(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAttributeDefinitions(c *gin.Context) {
	resp, err := s.attrSvc.ListDefinitions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAttributeDefinition(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.attrSvc.GetDefinition(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
