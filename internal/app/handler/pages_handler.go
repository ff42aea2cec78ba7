package handler

import (
	"net/http"
	"strings"

	"itsupport/internal/app/ds"
	"itsupport/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Static page content. Everything dynamic on these pages comes from the
// catalog tables; the rest is fixed copy.
const (
	siteTitle   = "IT Support Pro"
	siteTagline = "Votre partenaire informatique de confiance au Maroc"

	contactEmail   = "contact@itsupport.ma"
	contactPhone   = "+212 5 22 00 00 00"
	contactAddress = "Casablanca, Maroc"
	contactHours   = "Lun - Ven : 9h00 - 18h00"
)

// GetHomePage returns the landing page content with the service highlights.
// @Summary Page d'accueil
// @Tags Pages
// @Produce json
// @Success 200 {object} dto.HomePageResponse
// @Router /api/pages/home [get]
func (h *APIHandler) GetHomePage(ctx *gin.Context) {
	offerings, err := h.Repository.GetServiceOfferings()
	if err != nil {
		logrus.Error("Error loading offerings: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors du chargement de la page")
		return
	}

	ctx.JSON(http.StatusOK, dto.HomePageResponse{
		Title:    siteTitle,
		Tagline:  siteTagline,
		Services: offeringsToDTO(offerings),
	})
}

// GetServicesPage lists every service offering.
// @Summary Page services
// @Tags Pages
// @Produce json
// @Success 200 {object} dto.ServicesPageResponse
// @Router /api/pages/services [get]
func (h *APIHandler) GetServicesPage(ctx *gin.Context) {
	offerings, err := h.Repository.GetServiceOfferings()
	if err != nil {
		logrus.Error("Error loading offerings: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors du chargement de la page")
		return
	}

	ctx.JSON(http.StatusOK, dto.ServicesPageResponse{
		Services: offeringsToDTO(offerings),
	})
}

// GetPricingPage lists the plans cheapest first.
// @Summary Page tarifs
// @Tags Pages
// @Produce json
// @Success 200 {object} dto.PricingPageResponse
// @Router /api/pages/pricing [get]
func (h *APIHandler) GetPricingPage(ctx *gin.Context) {
	plans, err := h.Repository.GetServicePlans()
	if err != nil {
		logrus.Error("Error loading plans: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "erreur lors du chargement de la page")
		return
	}

	response := dto.PricingPageResponse{
		Plans: make([]dto.PlanResponse, 0, len(plans)),
	}
	for _, plan := range plans {
		features := []string{}
		for _, line := range strings.Split(plan.Features, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				features = append(features, line)
			}
		}
		response.Plans = append(response.Plans, dto.PlanResponse{
			Code:        string(plan.Code),
			Name:        plan.Name,
			Price:       plan.MonthlyPrice,
			Period:      "mois",
			Description: plan.Description,
			Features:    features,
			Popular:     plan.Popular,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// GetContactPage returns the static contact details.
// @Summary Page contact
// @Tags Pages
// @Produce json
// @Success 200 {object} dto.ContactPageResponse
// @Router /api/pages/contact [get]
func (h *APIHandler) GetContactPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ContactPageResponse{
		Email:   contactEmail,
		Phone:   contactPhone,
		Address: contactAddress,
		Hours:   contactHours,
	})
}

// SendContactMessage acknowledges a contact form submission. Messages are
// logged only; there is no mailbox behind this endpoint.
// @Summary Formulaire de contact
// @Tags Pages
// @Accept json
// @Produce json
// @Param request body dto.ContactMessageRequest true "Message"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/contact [post]
func (h *APIHandler) SendContactMessage(ctx *gin.Context) {
	var req dto.ContactMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	logrus.WithFields(logrus.Fields{
		"name":    req.Name,
		"email":   req.Email,
		"subject": req.Subject,
	}).Info("contact message received")

	h.successResponse(ctx, http.StatusOK, "message envoyé, nous vous répondrons rapidement", nil)
}

func offeringsToDTO(offerings []ds.ServiceOffering) []dto.OfferingResponse {
	out := make([]dto.OfferingResponse, 0, len(offerings))
	for _, o := range offerings {
		out = append(out, dto.OfferingResponse{
			Code:        string(o.Code),
			Name:        o.Name,
			Description: o.Description,
			Icon:        o.Icon,
		})
	}
	return out
}
