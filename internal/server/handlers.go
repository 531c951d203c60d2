package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/output"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/plan"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/gin-gonic/gin"
)

const maxPlanYears = 100

var contentTypes = map[string]string{
	"console": "text/plain; charset=utf-8",
	"csv":     "text/csv; charset=utf-8",
	"html":    "text/html; charset=utf-8",
	"pdf":     "application/pdf",
}

func badRequest(c *gin.Context, code string, err error) {
	c.Error(err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{Code: code, Message: err.Error()}})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listProducts handles GET /api/v1/products
func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": s.service.Engine.Products.Catalog()})
}

// buildPlan handles POST /api/v1/plan
func (s *Server) buildPlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if req.Years < 1 || req.Years > maxPlanYears {
		badRequest(c, "INVALID_PLAN", fmt.Errorf("years must be between 1 and %d, got %d", maxPlanYears, req.Years))
		return
	}

	yearly := plan.BuildYearlyPlan(req.PlanSettings)
	resp := PlanResponse{YearlyPlan: yearly}
	if req.CompoundIndex {
		resp.IndexedPayments = make(map[int]string, req.Years)
		for year, v := range plan.IndexedPayments(req.PlanSettings, yearly) {
			resp.IndexedPayments[year] = v.String()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// runProjection handles POST /api/v1/projection. The optional format
// query parameter selects a report formatter instead of JSON.
func (s *Server) runProjection(c *gin.Context) {
	var scenario domain.Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if err := config.NewInputParser().ValidateScenario(&scenario); err != nil {
		code := "INVALID_SCENARIO"
		if errors.Is(err, product.ErrUnknownProduct) {
			code = "UNKNOWN_PRODUCT"
		}
		badRequest(c, code, err)
		return
	}

	result, err := s.service.Run(c.Request.Context(), &scenario)
	if err != nil {
		if errors.Is(err, product.ErrUnknownVariant) || errors.Is(err, product.ErrDurationTooShort) {
			badRequest(c, "INVALID_VARIANT", err)
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "PROJECTION_FAILED", Message: err.Error()}})
		return
	}

	format := c.Query("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		c.JSON(http.StatusOK, result)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		badRequest(c, "UNKNOWN_FORMAT", fmt.Errorf("unsupported format %q (available: %s)",
			format, strings.Join(output.AvailableFormatterNames(), ", ")))
		return
	}
	data, err := f.Format(result)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "FORMAT_FAILED", Message: err.Error()}})
		return
	}
	c.Data(http.StatusOK, contentTypes[f.Name()], data)
}

// netValues handles POST /api/v1/net-values
func (s *Server) netValues(c *gin.Context) {
	var req NetValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	switch req.Track {
	case "":
		req.Track = domain.TrackMain
	case domain.TrackMain, domain.TrackEseti:
	default:
		badRequest(c, "INVALID_TRACK", fmt.Errorf("unknown track %q", req.Track))
		return
	}
	c.JSON(http.StatusOK, NetValuesResponse{
		Track:   req.Track,
		NetRows: projection.NetValues(req.Track, req.Rows, req.IsCorporate),
	})
}
