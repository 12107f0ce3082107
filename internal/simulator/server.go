package simulator

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fairyhunter13/inventory-admin-client/internal/config"
	"github.com/fairyhunter13/inventory-admin-client/internal/model"
	"github.com/fairyhunter13/inventory-admin-client/internal/obs"
	"github.com/fairyhunter13/inventory-admin-client/internal/simulator/openapi"
)

const pageSize = 6

// Server serves the inventory API over a Dataset.
type Server struct {
	cfg  config.Config
	data *Dataset
}

// NewServer wraps a dataset with the HTTP layer.
func NewServer(cfg config.Config, data *Dataset) *Server {
	return &Server{cfg: cfg, data: data}
}

// respond writes the success envelope.
func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

// respondError writes the failure envelope with an error payload.
func respondError(c *gin.Context, status int, message string, errs any) {
	c.JSON(status, gin.H{"success": false, "message": message, "errors": errs})
}

// fail maps dataset errors onto the envelope the way the real server
// shapes them: field errors for validation, bare messages otherwise.
func fail(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, "Bad request", verr.Fields)
		return
	}
	if errors.Is(err, ErrNotFound) {
		respondError(c, http.StatusNotFound, "Resource not found", "not found")
		return
	}
	respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
}

// withRequestID echoes or assigns the request id header.
func withRequestID(c *gin.Context) {
	reqID := c.GetHeader("X-Request-Id")
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Header("X-Request-Id", reqID)
	c.Set("request_id", reqID)
	c.Next()
}

// withLogging logs one line per request.
func withLogging(c *gin.Context) {
	start := time.Now()
	c.Next()
	lat := time.Since(start)
	obs.Logger.Info("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency_ms", float64(lat.Microseconds())/1000.0,
		"request_id", c.GetString("request_id"),
	)
}

// Router builds the gin handler with middleware and all routes.
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), withRequestID, withLogging)

	products := r.Group("/products")
	{
		products.GET("/", s.listProducts)
		products.POST("/", s.createProduct)
		products.GET("/get_dropdown_data/", s.dropdownData)
		products.GET("/vendor_products/", s.listVendorProducts)
		products.POST("/vendor_products/", s.createVendorProduct)
		products.PATCH("/vendor_products/:id/", s.updateVendorProduct)
		products.PATCH("/:id/", s.updateProduct)
		products.DELETE("/:id/", s.deleteProduct)
		products.GET("/:id/sales-analysis/", s.salesAnalysis)
	}
	r.GET("/dashboard/", s.dashboard)
	r.POST("/returns/", s.createReturn)
	r.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", openapi.YAML)
	})
	return r
}

func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pg, err := s.data.ProductPage(page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "products fetched successfully", gin.H{
		"products": gin.H{
			"count":        pg.Meta.Count,
			"next":         pg.Meta.Next,
			"previous":     pg.Meta.Previous,
			"results":      pg.Products,
			"current_page": pg.Meta.CurrentPage,
			"total_pages":  pg.Meta.TotalPages,
		},
		"categories": pg.Categories,
	})
}

func (s *Server) createProduct(c *gin.Context) {
	var f model.ProductForm
	if err := c.ShouldBindJSON(&f); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	p, err := s.data.CreateProduct(f)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Product created successfully", p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var f model.ProductForm
	if err := c.ShouldBindJSON(&f); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	p, err := s.data.UpdateProduct(id, f)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	active, err := s.data.ToggleProduct(id)
	if err != nil {
		fail(c, err)
		return
	}
	msg := "Product deactivated successfully"
	if active {
		msg = "Product reactivated successfully"
	}
	respond(c, http.StatusOK, msg, nil)
}

func (s *Server) dropdownData(c *gin.Context) {
	respond(c, http.StatusOK, "dropdown_data fetched successfully", s.data.Dropdown())
}

func (s *Server) listVendorProducts(c *gin.Context) {
	respond(c, http.StatusOK, "VendorProducts fetched successfully", gin.H{
		"vendor_products": s.data.VendorProducts(),
	})
}

func (s *Server) createVendorProduct(c *gin.Context) {
	var f model.VendorProductForm
	if err := c.ShouldBindJSON(&f); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	vp, err := s.data.CreateVendorProduct(f)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "VendorProduct created successfully", vp)
}

func (s *Server) updateVendorProduct(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var adj model.StockAdjustment
	if err := c.ShouldBindJSON(&adj); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	if err := s.data.AdjustStock(id, adj.Stock); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "VendorProduct updated successfully", nil)
}

func (s *Server) salesAnalysis(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	sa, err := s.data.SalesAnalysis(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "sales_analysis fetched successfully", sa)
}

func (s *Server) dashboard(c *gin.Context) {
	respond(c, http.StatusOK, "dashboard fetched successfully", s.data.Dashboard(s.cfg.LowStockLimit))
}

func (s *Server) createReturn(c *gin.Context) {
	var ret model.ProductReturn
	if err := c.ShouldBindJSON(&ret); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	if err := s.data.ApplyReturn(ret); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "ProductReturn created successfully", nil)
}
