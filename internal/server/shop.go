package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	shopdomain "github.com/sellercentre/catalog/internal/shop/domain"
)

type createShopRequest struct {
	SellerID    string `json:"sellerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) CreateShop(c *gin.Context) {
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.shopSvc.Create(c.Request.Context(), shopdomain.CreateRequest{
		SellerID:    strings.TrimSpace(req.SellerID),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetShop(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.shopSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteShop(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.shopSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListShopProducts(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.ListByShop(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
