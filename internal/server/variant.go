package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	variantdomain "github.com/sellercentre/catalog/internal/variant/domain"
)

func (s *Server) GetVariant(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.variantSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteVariant(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.variantSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type updatePriceRequest struct {
	Price float64 `json:"price"`
}

func (s *Server) UpdateVariantPrice(c *gin.Context) {
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.UpdatePrice(c.Request.Context(), variantdomain.PriceRequest{
		VariantID: strings.TrimSpace(c.Param("id")),
		Price:     req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateImagesRequest struct {
	Images []string `json:"images"`
}

func (s *Server) UpdateVariantImages(c *gin.Context) {
	var req updateImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.UpdateImages(c.Request.Context(), variantdomain.ImagesRequest{
		VariantID: strings.TrimSpace(c.Param("id")),
		Images:    req.Images,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddVariantAttribute(c *gin.Context) {
	var req attributedomain.AttributeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.AddAttribute(c.Request.Context(), variantdomain.AddAttributeRequest{
		VariantID: strings.TrimSpace(c.Param("id")),
		Attribute: req,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveVariantAttribute(c *gin.Context) {
	resp, err := s.variantSvc.RemoveAttribute(c.Request.Context(), variantdomain.RemoveAttributeRequest{
		VariantID:     strings.TrimSpace(c.Param("id")),
		AttributeName: strings.TrimSpace(c.Param("name")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type valueRequest struct {
	SubAttributeName string                     `json:"subAttributeName"`
	Value            attributedomain.ValueInput `json:"value"`
}

func (s *Server) AddVariantAttributeValue(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.AddAttributeValue(c.Request.Context(), variantdomain.ValueRequest{
		VariantID:        strings.TrimSpace(c.Param("id")),
		AttributeName:    strings.TrimSpace(c.Param("name")),
		SubAttributeName: strings.TrimSpace(req.SubAttributeName),
		Value:            req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveVariantAttributeValue(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.RemoveAttributeValue(c.Request.Context(), variantdomain.ValueRequest{
		VariantID:        strings.TrimSpace(c.Param("id")),
		AttributeName:    strings.TrimSpace(c.Param("name")),
		SubAttributeName: strings.TrimSpace(req.SubAttributeName),
		Value:            req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStockRequest struct {
	StockCount int `json:"stockCount"`
}

func (s *Server) UpdateSKUStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.UpdateSKUStock(c.Request.Context(), variantdomain.SKUStockRequest{
		VariantID:  strings.TrimSpace(c.Param("id")),
		SKUID:      strings.TrimSpace(c.Param("skuId")),
		StockCount: req.StockCount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSKUPrice(c *gin.Context) {
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.variantSvc.UpdateSKUPrice(c.Request.Context(), variantdomain.SKUPriceRequest{
		VariantID: strings.TrimSpace(c.Param("id")),
		SKUID:     strings.TrimSpace(c.Param("skuId")),
		Price:     req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
