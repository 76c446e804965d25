package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListLanguages(c *gin.Context) {
	languages, err := s.refrepo.ListLanguages(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": languages})
}

func (s *Server) ListCertificationTypes(c *gin.Context) {
	types, err := s.refrepo.ListCertificationTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": types})
}

func (s *Server) ListDeliveryOptions(c *gin.Context) {
	options, err := s.refrepo.ListDeliveryOptions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": options})
}

func (s *Server) ListTaxRates(c *gin.Context) {
	rates, err := s.refrepo.ListTaxRates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rates})
}
