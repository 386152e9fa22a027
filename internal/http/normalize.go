package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recruiter/internal/normalize"
)

type NormalizeController struct{}

func NewNormalizeController() *NormalizeController {
	return &NormalizeController{}
}

// NormalizeResponse is the canonical form of one submitted value.
type NormalizeResponse struct {
	Catalog    string `json:"catalog"`
	Value      string `json:"value"`
	Normalized string `json:"normalized"`
}

// Normalize handles GET /api/normalize/:catalog?value=...&list=true
func (nc *NormalizeController) Normalize(c *gin.Context) {
	catalog, err := normalize.Lookup(c.Param("catalog"))
	if err != nil {
		respondImportError(c, err, gin.H{"catalogs": normalize.CatalogNames()})
		return
	}

	value := c.Query("value")
	list, _ := strconv.ParseBool(c.DefaultQuery("list", "false"))

	normalized := catalog.Normalize(value)
	if list {
		normalized = catalog.NormalizeList(value)
	}

	c.JSON(http.StatusOK, NormalizeResponse{
		Catalog:    catalog.Name(),
		Value:      value,
		Normalized: normalized,
	})
}

// Labels handles GET /api/normalize/:catalog/labels
func (nc *NormalizeController) Labels(c *gin.Context) {
	catalog, err := normalize.Lookup(c.Param("catalog"))
	if err != nil {
		respondImportError(c, err, gin.H{"catalogs": normalize.CatalogNames()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"catalog": catalog.Name(), "labels": catalog.Labels()})
}
